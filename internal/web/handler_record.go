package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/vbonduro/snakebite/internal/service"
)

const maxRecordSize = 1 << 20 // 1 MB

var errRecordNotObject = errors.New("record must be a JSON object")

type recordResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) handleSaveRecord(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRecordSize))
	dec.UseNumber()

	var body any
	if err := dec.Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		s.logger.Warn("decode record failed", "error", err)
		s.writeJSON(w, http.StatusBadRequest, recordResponse{Error: err.Error()})
		return
	}
	if isEmptyPayload(body) {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No data provided"})
		return
	}
	data, ok := body.(map[string]any)
	if !ok {
		s.writeJSON(w, http.StatusBadRequest, recordResponse{Error: errRecordNotObject.Error()})
		return
	}

	if err := s.records.AppendRecord(r.Context(), data); err != nil {
		s.logServiceError("save record failed", err)
		s.writeJSON(w, statusFor(err), recordResponse{Error: err.Error()})
		return
	}

	s.writeJSON(w, http.StatusOK, recordResponse{Success: true, Message: "Record saved successfully"})
}

// isEmptyPayload reports whether a decoded body carries nothing to save:
// null, an empty object or array, an empty string, zero or false.
func isEmptyPayload(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case map[string]any:
		return len(x) == 0
	case []any:
		return len(x) == 0
	case string:
		return x == ""
	case bool:
		return !x
	case json.Number:
		f, err := x.Float64()
		return err == nil && f == 0
	}
	return false
}

// statusFor maps a service error onto an HTTP status.
func statusFor(err error) int {
	if service.KindOf(err) == service.KindValidation {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// logServiceError logs caller mistakes at warn level and everything else as
// an error.
func (s *Server) logServiceError(msg string, err error) {
	kind := service.KindOf(err)
	if kind == service.KindValidation {
		s.logger.Warn(msg, "kind", kind.String(), "error", err)
		return
	}
	s.logger.Error(msg, "kind", kind.String(), "error", err)
}
