package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/linekb/internal/processor"
	"github.com/MikeSquared-Agency/linekb/internal/store"
)

// EntryStore is the read/toggle side of the knowledge store. *store.Store
// satisfies it.
type EntryStore interface {
	ListEntries(ctx context.Context, opts store.ListOpts) ([]store.EntryRow, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type Server struct {
	router    *chi.Mux
	http      *http.Server
	proc      *processor.Processor
	entries   EntryStore
	maxUpload int64
	logger    *slog.Logger
}

type Options struct {
	Port           int
	APIToken       string
	MaxUploadBytes int64
}

// NewServer wires the routes. entries may be nil when no database is
// configured; the entry routes then answer 503.
func NewServer(opts Options, proc *processor.Processor, entries EntryStore, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:    router,
		proc:      proc,
		entries:   entries,
		maxUpload: opts.MaxUploadBytes,
		logger:    logger,
	}
	if s.maxUpload <= 0 {
		s.maxUpload = 10 << 20
	}

	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	router.Get("/health", s.health)
	router.Get("/api/v1/linekb/status", s.status)

	router.Route("/api/v1/kb", func(r chi.Router) {
		r.Use(BearerAuthMiddleware(opts.APIToken))
		r.Post("/extract", s.extract)
		r.Post("/import", s.importTranscript)
		r.Get("/entries", s.listEntries)
		r.Patch("/entries/{id}", s.patchEntry)
	})

	return s
}

func (s *Server) Start() error {
	s.logger.Info("API server starting", "addr", s.http.Addr)
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"agent":    "linekb",
		"store":    s.entries != nil,
		"persists": s.proc.Persists(),
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
