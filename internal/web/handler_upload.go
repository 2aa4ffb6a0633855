package web

import (
	"errors"
	"io"
	"net/http"
)

const (
	maxPhotoSize   = 50 * 1024 * 1024 // 50 MB
	maxFormMemory  = 32 << 20
	imageFormField = "image"
)

type uploadResponse struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"imageUrl,omitempty"`
	Error    string `json:"error,omitempty"`
}

func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoSize)

	imageData, filename, err := s.readImage(r)
	if err != nil {
		s.logger.Warn("read upload failed", "error", err)
		s.writeJSON(w, http.StatusBadRequest, uploadResponse{Error: err.Error()})
		return
	}

	imageURL, err := s.photos.UploadPhoto(r.Context(), imageData, filename)
	if err != nil {
		s.logServiceError("upload image failed", err)
		s.writeJSON(w, statusFor(err), uploadResponse{Error: err.Error()})
		return
	}

	s.writeJSON(w, http.StatusOK, uploadResponse{Success: true, ImageURL: imageURL})
}

// readImage extracts the image part. A missing part yields nil data, and a
// part sent without a filename yields an empty filename; both are left for
// the photo service to reject.
func (s *Server) readImage(r *http.Request) ([]byte, string, error) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, "", nil
		}
		return nil, "", err
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			s.logger.Error("failed to remove multipart temp files", "error", err)
		}
	}()

	file, header, err := r.FormFile(imageFormField)
	if errors.Is(err, http.ErrMissingFile) {
		// Browsers submit an empty file input as a part with filename="",
		// which the multipart reader files under plain values.
		if vals := r.MultipartForm.Value[imageFormField]; len(vals) > 0 {
			return []byte(vals[0]), "", nil
		}
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}
	defer closeWithLog(file, "upload file", s.logger)

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}
	return data, header.Filename, nil
}
