package web

import "net/http"

const healthPath = "/api/health"

// handleHealth never touches the session provider so it reports ok even when
// credentials or remote services are broken.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
