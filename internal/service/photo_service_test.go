package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = func() time.Time { return time.Date(2024, 7, 14, 21, 5, 9, 0, time.UTC) }

func newTestPhotoService(t *testing.T, p *fakeProvider) (*PhotoService, string) {
	t.Helper()
	dir := t.TempDir()
	svc := NewPhotoService(p, dir, slog.Default())
	svc.now = fixedNow
	svc.retryDelay = time.Millisecond
	return svc, dir
}

func stagedFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestPhotoServiceUploadSuccess(t *testing.T) {
	ps := newMemPhotoStore()
	svc, dir := newTestPhotoService(t, &fakeProvider{ps: ps})

	url, err := svc.UploadPhoto(context.Background(), []byte("jpeg bytes"), "bite.jpg")
	require.NoError(t, err)

	id := "file1-bite_20240714210509.jpg"
	assert.Equal(t, "https://drive.google.com/uc?id="+id, url)
	assert.Equal(t, []byte("jpeg bytes"), ps.objects[id])
	assert.True(t, ps.shared[id])
	assert.Empty(t, stagedFiles(t, dir))
}

func TestPhotoServiceValidation(t *testing.T) {
	p := &fakeProvider{ps: newMemPhotoStore()}
	svc, dir := newTestPhotoService(t, p)
	ctx := context.Background()

	_, err := svc.UploadPhoto(ctx, nil, "bite.jpg")
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, "No image file provided", err.Error())

	_, err = svc.UploadPhoto(ctx, []byte("x"), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoFilename)

	assert.Zero(t, p.photoOps)
	assert.Empty(t, stagedFiles(t, dir))
}

func TestPhotoServiceRemoteFailuresStillCleanUp(t *testing.T) {
	tests := []struct {
		name     string
		provider func() *fakeProvider
		wantKind Kind
		wantMsg  string
	}{
		{
			name:     "session",
			provider: func() *fakeProvider { return &fakeProvider{photoErr: errors.New("invalid_grant")} },
			wantKind: KindAuth,
			wantMsg:  "invalid_grant",
		},
		{
			name: "create",
			provider: func() *fakeProvider {
				ps := newMemPhotoStore()
				ps.createErr = errors.New("storage quota exceeded")
				return &fakeProvider{ps: ps}
			},
			wantKind: KindRemote,
			wantMsg:  "storage quota exceeded",
		},
		{
			name: "share",
			provider: func() *fakeProvider {
				ps := newMemPhotoStore()
				ps.shareErr = errors.New("sharing disabled by domain policy")
				return &fakeProvider{ps: ps}
			},
			wantKind: KindRemote,
			wantMsg:  "sharing disabled by domain policy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, dir := newTestPhotoService(t, tt.provider())

			url, err := svc.UploadPhoto(context.Background(), []byte("jpeg"), "bite.jpg")
			require.Error(t, err)
			assert.Empty(t, url)
			assert.Equal(t, tt.wantKind, KindOf(err))
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.Empty(t, stagedFiles(t, dir))
		})
	}
}

func TestPhotoServiceLockedFileDoesNotFailUpload(t *testing.T) {
	svc, dir := newTestPhotoService(t, &fakeProvider{ps: newMemPhotoStore()})
	attempts := 0
	svc.remove = func(string) error {
		attempts++
		return errors.New("The process cannot access the file because it is being used by another process")
	}

	url, err := svc.UploadPhoto(context.Background(), []byte("jpeg"), "bite.jpg")
	require.NoError(t, err)
	assert.NotEmpty(t, url)
	assert.Equal(t, removeAttempts, attempts)
	assert.Equal(t, []string{"bite_20240714210509.jpg"}, stagedFiles(t, dir))
}

func TestPhotoServiceRemoveRetriesUntilUnlocked(t *testing.T) {
	svc, dir := newTestPhotoService(t, &fakeProvider{ps: newMemPhotoStore()})
	attempts := 0
	svc.remove = func(name string) error {
		attempts++
		if attempts < 3 {
			return errors.New("file locked")
		}
		return os.Remove(name)
	}

	_, err := svc.UploadPhoto(context.Background(), []byte("jpeg"), "bite.jpg")
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Empty(t, stagedFiles(t, dir))
}

func TestPhotoServiceStagingWriteFailure(t *testing.T) {
	p := &fakeProvider{ps: newMemPhotoStore()}
	svc := NewPhotoService(p, filepath.Join(t.TempDir(), "missing", "dir"), slog.Default())

	_, err := svc.UploadPhoto(context.Background(), []byte("jpeg"), "bite.jpg")
	require.Error(t, err)
	assert.Equal(t, KindLocalIO, KindOf(err))
	assert.Zero(t, p.photoOps)
}

func TestPhotoServiceEmptyPayloadIsUploaded(t *testing.T) {
	ps := newMemPhotoStore()
	svc, _ := newTestPhotoService(t, &fakeProvider{ps: ps})

	_, err := svc.UploadPhoto(context.Background(), []byte{}, "bite.jpg")
	require.NoError(t, err)
	assert.Len(t, ps.objects, 1)
}

func TestPhotoServiceRemoveStopsWhenFileAlreadyGone(t *testing.T) {
	svc, _ := newTestPhotoService(t, &fakeProvider{ps: newMemPhotoStore()})
	attempts := 0
	svc.remove = func(name string) error {
		attempts++
		require.NoError(t, os.Remove(name))
		return os.ErrNotExist
	}

	_, err := svc.UploadPhoto(context.Background(), []byte("jpeg"), "bite.jpg")
	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
}
