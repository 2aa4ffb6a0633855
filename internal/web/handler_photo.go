package web

import (
	"io"
	"net/http"
)

func (s *Server) handleGetPhoto(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	reader, mimeType, err := s.files.Open(r.Context(), name)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer closeWithLog(reader, "photo reader", s.logger)

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := io.Copy(w, reader); err != nil {
		s.logger.Error("write photo failed", "name", name, "error", err)
	}
}
