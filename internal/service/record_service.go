package service

import (
	"context"
	"log/slog"

	"github.com/vbonduro/snakebite/internal/domain"
	"github.com/vbonduro/snakebite/internal/sheet"
)

// worksheetProvider is the subset of session.Provider that RecordService requires.
type worksheetProvider interface {
	OpenWorksheet(ctx context.Context) (sheet.Worksheet, error)
}

// RecordService appends incident records to the shared worksheet.
//
// Every call reads the whole worksheet, appends one row and rewrites the
// worksheet in full, header included. Concurrent callers can overwrite each
// other's rows; no locking is attempted.
type RecordService struct {
	sessions worksheetProvider
	logger   *slog.Logger
}

func NewRecordService(sessions worksheetProvider, logger *slog.Logger) *RecordService {
	return &RecordService{sessions: sessions, logger: logger}
}

// AppendRecord stores input as a new row. Known fields missing from input are
// saved as "" and unknown keys are ignored. Calling it twice stores two rows.
func (s *RecordService) AppendRecord(ctx context.Context, input map[string]any) error {
	ws, err := s.sessions.OpenWorksheet(ctx)
	if err != nil {
		return wrap(KindAuth, err)
	}

	rows, err := ws.GetAllRecords(ctx)
	if err != nil {
		return wrap(KindRemote, err)
	}

	snap := domain.SnapshotFromRows(rows)
	snap = append(snap, domain.NewRecord(input))
	s.logger.Debug("worksheet snapshot loaded", "existing_rows", len(rows))

	if err := ws.Clear(ctx); err != nil {
		return wrap(KindRemote, err)
	}
	if err := ws.Update(ctx, snap.Grid()); err != nil {
		return wrap(KindRemote, err)
	}

	s.logger.Info("record appended", "rows", len(snap))
	return nil
}
