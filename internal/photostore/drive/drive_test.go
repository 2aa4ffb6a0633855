package drive

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

func newTestStore(t *testing.T, h http.Handler) *DrivePhotoStore {
	t.Helper()
	return newTestStoreInFolder(t, h, "")
}

func newTestStoreInFolder(t *testing.T, h http.Handler, folderID string) *DrivePhotoStore {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	svc, err := drive.NewService(context.Background(),
		option.WithHTTPClient(srv.Client()),
		option.WithEndpoint(srv.URL+"/"),
	)
	require.NoError(t, err)
	return NewDrivePhotoStore(svc, folderID)
}

func TestPublicURL(t *testing.T) {
	s := NewDrivePhotoStore(nil, "")
	assert.Equal(t, "https://drive.google.com/uc?id=abc123", s.PublicURL("abc123"))
}

func TestCreateUploadsIntoFolder(t *testing.T) {
	var (
		path    string
		query   url.Values
		meta    drive.File
		payload []byte
		ctype   string
	)
	s := newTestStoreInFolder(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		query = r.URL.Query()

		_, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		require.NoError(t, err)
		mr := multipart.NewReader(r.Body, params["boundary"])

		part, err := mr.NextPart()
		require.NoError(t, err)
		require.NoError(t, json.NewDecoder(part).Decode(&meta))

		part, err = mr.NextPart()
		require.NoError(t, err)
		ctype = part.Header.Get("Content-Type")
		payload, err = io.ReadAll(part)
		require.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"file9"}`)
	}), "folder42")

	id, err := s.Create(context.Background(), "bite_20240101120000.jpg", "image/jpeg", bytes.NewReader([]byte("jpeg-bytes")))
	require.NoError(t, err)

	assert.Equal(t, "file9", id)
	assert.Equal(t, "/upload/drive/v3/files", path)
	assert.Equal(t, "multipart", query.Get("uploadType"))
	assert.Equal(t, "id", query.Get("fields"))
	assert.Equal(t, "true", query.Get("supportsAllDrives"))
	assert.Equal(t, "bite_20240101120000.jpg", meta.Name)
	assert.Equal(t, []string{"folder42"}, meta.Parents)
	assert.Equal(t, "image/jpeg", ctype)
	assert.Equal(t, []byte("jpeg-bytes"), payload)
}

func TestCreateWithoutFolderOmitsParents(t *testing.T) {
	var meta drive.File
	s := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		require.NoError(t, err)
		part, err := multipart.NewReader(r.Body, params["boundary"]).NextPart()
		require.NoError(t, err)
		require.NoError(t, json.NewDecoder(part).Decode(&meta))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"file10"}`)
	}))

	id, err := s.Create(context.Background(), "bite.jpg", "image/jpeg", bytes.NewReader([]byte("x")))
	require.NoError(t, err)
	assert.Equal(t, "file10", id)
	assert.Empty(t, meta.Parents)
}

func TestShareGrantsAnyoneReader(t *testing.T) {
	var got drive.Permission
	var path string
	s := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"perm1"}`)
	}))

	require.NoError(t, s.Share(context.Background(), "file1"))
	assert.Equal(t, "/files/file1/permissions", path)
	assert.Equal(t, "anyone", got.Type)
	assert.Equal(t, "reader", got.Role)
}

func TestShareSurfacesServiceError(t *testing.T) {
	s := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":{"code":404,"message":"File not found: file1."}}`)
	}))

	err := s.Share(context.Background(), "file1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "File not found: file1.")
}
