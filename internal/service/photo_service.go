package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/vbonduro/snakebite/internal/photostore"
)

const (
	photoPrefix    = "bite_"
	photoExt       = ".jpg"
	photoMIME      = "image/jpeg"
	photoTimestamp = "20060102150405"

	removeAttempts   = 5
	removeRetryDelay = 300 * time.Millisecond
)

// photoStoreProvider is the subset of session.Provider that PhotoService requires.
type photoStoreProvider interface {
	OpenPhotoStore(ctx context.Context) (photostore.PhotoStore, error)
}

// PhotoService stages an uploaded photo on local disk, pushes it to the photo
// store and shares it publicly.
type PhotoService struct {
	sessions   photoStoreProvider
	stagingDir string
	logger     *slog.Logger

	now        func() time.Time
	remove     func(name string) error
	retryDelay time.Duration
}

func NewPhotoService(sessions photoStoreProvider, stagingDir string, logger *slog.Logger) *PhotoService {
	if stagingDir == "" {
		stagingDir = os.TempDir()
	}
	return &PhotoService{
		sessions:   sessions,
		stagingDir: stagingDir,
		logger:     logger,
		now:        time.Now,
		remove:     os.Remove,
		retryDelay: removeRetryDelay,
	}
}

// UploadPhoto stores imageData remotely and returns its public URL. The local
// staging file is removed on every path; a failed removal is logged and never
// changes the result.
func (s *PhotoService) UploadPhoto(ctx context.Context, imageData []byte, filename string) (string, error) {
	if imageData == nil {
		return "", wrap(KindValidation, ErrNoImage)
	}
	if filename == "" {
		return "", wrap(KindValidation, ErrNoFilename)
	}

	name := photoPrefix + s.now().Format(photoTimestamp) + photoExt
	path := filepath.Join(s.stagingDir, name)
	s.logger.Info("upload photo started", "name", name, "bytes", len(imageData), "filename", filename)

	var body *os.File
	defer func() { s.cleanup(body, path) }()

	if err := os.WriteFile(path, imageData, 0600); err != nil {
		return "", wrap(KindLocalIO, fmt.Errorf("failed to stage photo: %w", err))
	}
	s.logger.Debug("temporary file saved", "path", path)

	body, err := os.Open(path)
	if err != nil {
		return "", wrap(KindLocalIO, fmt.Errorf("failed to open staged photo: %w", err))
	}

	store, err := s.sessions.OpenPhotoStore(ctx)
	if err != nil {
		return "", wrap(KindAuth, err)
	}
	if c, ok := store.(io.Closer); ok {
		defer closeWithLog(c, "photo store", s.logger)
	}

	id, err := store.Create(ctx, name, photoMIME, body)
	if err != nil {
		return "", wrap(KindRemote, err)
	}
	s.logger.Info("photo uploaded", "id", id)

	if err := store.Share(ctx, id); err != nil {
		return "", wrap(KindRemote, err)
	}

	imageURL := store.PublicURL(id)
	s.logger.Info("upload photo complete", "id", id, "url", imageURL)
	return imageURL, nil
}

// cleanup closes the payload handle and deletes the staging file, retrying
// to ride out another process briefly holding the file open.
func (s *PhotoService) cleanup(body *os.File, path string) {
	if body != nil {
		closeWithLog(body, "staged photo", s.logger)
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return
	}

	_, err := backoff.Retry(context.Background(), func() (struct{}, error) {
		if err := s.remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return struct{}{}, err
		}
		return struct{}{}, nil
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(s.retryDelay)),
		backoff.WithMaxTries(removeAttempts),
	)
	if err != nil {
		s.logger.Warn("temporary file removal failed", "path", path, "attempts", removeAttempts, "error", err)
		return
	}
	s.logger.Debug("temporary file removed", "path", path)
}

// closeWithLog closes c and logs any error, using label to identify the resource.
func closeWithLog(c io.Closer, label string, logger *slog.Logger) {
	if err := c.Close(); err != nil {
		logger.Error("failed to close resource", "label", label, "error", err)
	}
}
