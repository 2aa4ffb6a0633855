package web

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/cors"
)

// recordAppender is the subset of service.RecordService the server requires.
type recordAppender interface {
	AppendRecord(ctx context.Context, input map[string]any) error
}

// photoUploader is the subset of service.PhotoService the server requires.
type photoUploader interface {
	UploadPhoto(ctx context.Context, imageData []byte, filename string) (string, error)
}

// photoFiles serves back photos kept by a local photo store.
type photoFiles interface {
	Open(ctx context.Context, id string) (io.ReadCloser, string, error)
}

type Server struct {
	records recordAppender
	photos  photoUploader
	files   photoFiles
	limiter *rateLimiter
	cors    *cors.Cors
	mux     *http.ServeMux
	logger  *slog.Logger
}

type Option func(*Server)

// WithPhotoFiles exposes GET /api/photos/{name} backed by files.
func WithPhotoFiles(files photoFiles) Option {
	return func(s *Server) { s.files = files }
}

// WithRateLimit limits each client IP to rps requests per second. rps <= 0
// leaves requests unlimited.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) {
		if rps > 0 {
			s.limiter = newRateLimiter(rps, burst)
		}
	}
}

func NewServer(records recordAppender, photos photoUploader, logger *slog.Logger, opts ...Option) *Server {
	s := &Server{
		records: records,
		photos:  photos,
		cors:    newCORS(),
		mux:     http.NewServeMux(),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET "+healthPath, s.handleHealth)
	s.mux.HandleFunc("POST /api/save-record", s.handleSaveRecord)
	s.mux.HandleFunc("POST /api/upload-image", s.handleUploadImage)
	if s.files != nil {
		s.mux.HandleFunc("GET /api/photos/{name}", s.handleGetPhoto)
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var h http.Handler = s.mux
	if s.limiter != nil {
		h = s.limiter.middleware(h)
	}
	requestLogger(s.logger, s.cors.Handler(apiHeaders(h))).ServeHTTP(w, r)
}

// ListenAndServe serves until ctx is cancelled, then drains in-flight
// requests.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write response failed", "error", err)
	}
}

// closeWithLog closes c and logs any error, using label to identify the resource.
func closeWithLog(c io.Closer, label string, logger *slog.Logger) {
	if err := c.Close(); err != nil {
		logger.Error("failed to close resource", "label", label, "error", err)
	}
}
