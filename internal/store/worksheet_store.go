package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vbonduro/snakebite/internal/sheet"
)

// WorksheetStore keeps a worksheet as a sparse cell table in SQLite. Several
// named sheets can share one database.
type WorksheetStore struct {
	db    *sql.DB
	sheet string
}

func NewWorksheetStore(db *sql.DB, sheetName string) *WorksheetStore {
	return &WorksheetStore{db: db, sheet: sheetName}
}

func (s *WorksheetStore) GetAllRecords(ctx context.Context) ([]map[string]any, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT row_idx, col_idx, value FROM worksheet_cells
		WHERE sheet = ? ORDER BY row_idx, col_idx
	`, s.sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to query cells: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var grid [][]any
	for rows.Next() {
		var r, c int
		var v string
		if err := rows.Scan(&r, &c, &v); err != nil {
			return nil, fmt.Errorf("failed to scan cell: %w", err)
		}
		for len(grid) <= r {
			grid = append(grid, nil)
		}
		for len(grid[r]) <= c {
			grid[r] = append(grid[r], nil)
		}
		grid[r][c] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cells: %w", err)
	}

	return sheet.RowsToRecords(grid), nil
}

func (s *WorksheetStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM worksheet_cells WHERE sheet = ?`, s.sheet); err != nil {
		return fmt.Errorf("failed to clear sheet: %w", err)
	}
	return nil
}

func (s *WorksheetStore) Update(ctx context.Context, rows [][]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO worksheet_cells (sheet, row_idx, col_idx, value) VALUES (?, ?, ?, ?)
		ON CONFLICT (sheet, row_idx, col_idx) DO UPDATE SET value = excluded.value
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for r, row := range rows {
		for c, v := range row {
			if _, err := stmt.ExecContext(ctx, s.sheet, r, c, v); err != nil {
				return fmt.Errorf("failed to write cell (%d,%d): %w", r, c, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit sheet update: %w", err)
	}
	return nil
}
