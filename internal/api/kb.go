package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/linekb/internal/store"
)

// readTranscript returns the request body as text. Oversized bodies are
// rejected rather than truncated.
func (s *Server) readTranscript(w http.ResponseWriter, r *http.Request) (string, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxUpload))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("transcript exceeds %d bytes", s.maxUpload))
			return "", false
		}
		writeError(w, http.StatusBadRequest, "failed to read body")
		return "", false
	}
	if len(body) == 0 {
		writeError(w, http.StatusBadRequest, "empty transcript")
		return "", false
	}
	return string(body), true
}

func origin(r *http.Request) string {
	if name := r.URL.Query().Get("file_name"); name != "" {
		return name
	}
	return "api"
}

// extract handles POST /api/v1/kb/extract. It never writes.
func (s *Server) extract(w http.ResponseWriter, r *http.Request) {
	text, ok := s.readTranscript(w, r)
	if !ok {
		return
	}

	out, err := s.proc.Process(r.Context(), origin(r), text, true)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// importTranscript handles POST /api/v1/kb/import.
func (s *Server) importTranscript(w http.ResponseWriter, r *http.Request) {
	if !s.proc.Persists() {
		writeError(w, http.StatusServiceUnavailable, "no store configured")
		return
	}
	text, ok := s.readTranscript(w, r)
	if !ok {
		return
	}

	out, err := s.proc.Process(r.Context(), origin(r), text, false)
	if err != nil {
		s.logger.Error("import failed", "error", err)
		writeError(w, http.StatusInternalServerError, "import failed")
		return
	}

	s.logger.Info("transcript imported",
		"origin", origin(r),
		"entries", len(out.Entries),
		"inserted", out.Upsert.Inserted,
		"updated", out.Upsert.Updated,
	)
	writeJSON(w, http.StatusOK, out)
}

// listEntries handles GET /api/v1/kb/entries.
func (s *Server) listEntries(w http.ResponseWriter, r *http.Request) {
	if s.entries == nil {
		writeError(w, http.StatusServiceUnavailable, "no store configured")
		return
	}

	q := r.URL.Query()
	opts := store.ListOpts{Category: q.Get("category")}

	var err error
	if v := q.Get("limit"); v != "" {
		if opts.Limit, err = strconv.Atoi(v); err != nil || opts.Limit < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
	}
	if v := q.Get("offset"); v != "" {
		if opts.Offset, err = strconv.Atoi(v); err != nil || opts.Offset < 0 {
			writeError(w, http.StatusBadRequest, "invalid offset")
			return
		}
	}
	if v := q.Get("active"); v != "" {
		if opts.ActiveOnly, err = strconv.ParseBool(v); err != nil {
			writeError(w, http.StatusBadRequest, "invalid active flag")
			return
		}
	}

	rows, err := s.entries.ListEntries(r.Context(), opts)
	if err != nil {
		s.logger.Error("list entries failed", "error", err)
		writeError(w, http.StatusInternalServerError, "list failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"entries": rows,
		"count":   len(rows),
	})
}

type patchRequest struct {
	IsActive *bool `json:"is_active"`
}

// patchEntry handles PATCH /api/v1/kb/entries/{id}.
func (s *Server) patchEntry(w http.ResponseWriter, r *http.Request) {
	if s.entries == nil {
		writeError(w, http.StatusServiceUnavailable, "no store configured")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req patchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}
	if req.IsActive == nil {
		writeError(w, http.StatusBadRequest, "is_active is required")
		return
	}

	if err := s.entries.SetActive(r.Context(), id, *req.IsActive); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "entry not found")
			return
		}
		s.logger.Error("set active failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "update failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "is_active": *req.IsActive})
}
