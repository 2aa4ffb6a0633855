package drive

import (
	"context"
	"fmt"
	"io"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
)

// publicURLFormat is the direct-download link for a file shared with anyone.
const publicURLFormat = "https://drive.google.com/uc?id=%s"

// DrivePhotoStore uploads photos to Google Drive, optionally into a folder.
type DrivePhotoStore struct {
	svc      *drive.Service
	folderID string
}

func NewDrivePhotoStore(svc *drive.Service, folderID string) *DrivePhotoStore {
	return &DrivePhotoStore{svc: svc, folderID: folderID}
}

func (s *DrivePhotoStore) Create(ctx context.Context, name, mimeType string, r io.Reader) (string, error) {
	meta := &drive.File{Name: name}
	if s.folderID != "" {
		meta.Parents = []string{s.folderID}
	}

	f, err := s.svc.Files.Create(meta).
		Media(r, googleapi.ContentType(mimeType)).
		Fields("id").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", name, err)
	}
	return f.Id, nil
}

func (s *DrivePhotoStore) Share(ctx context.Context, id string) error {
	_, err := s.svc.Permissions.Create(id, &drive.Permission{Type: "anyone", Role: "reader"}).
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to share file %s: %w", id, err)
	}
	return nil
}

func (s *DrivePhotoStore) PublicURL(id string) string {
	return fmt.Sprintf(publicURLFormat, id)
}
