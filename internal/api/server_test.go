package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/linekb/internal/knowledge"
	"github.com/MikeSquared-Agency/linekb/internal/processor"
	"github.com/MikeSquared-Agency/linekb/internal/store"
)

const export = "送信者タイプ,送信者名,送信日,送信時刻,内容\n" +
	"User,田中,2024/01/05,10:00,料金はいくらですか\n" +
	"Account,フォトスタジオ,2024/01/05,10:05,料金は税込15000円からです。詳細はHPをご確認ください。\n"

type fakeStore struct {
	written []knowledge.Entry
	rows    []store.EntryRow
	opts    store.ListOpts
	active  map[uuid.UUID]bool
}

func (f *fakeStore) UpsertEntries(_ context.Context, _ string, entries []knowledge.Entry) (store.UpsertResult, error) {
	f.written = append(f.written, entries...)
	return store.UpsertResult{Inserted: len(entries)}, nil
}

func (f *fakeStore) ListEntries(_ context.Context, opts store.ListOpts) ([]store.EntryRow, error) {
	f.opts = opts
	return f.rows, nil
}

func (f *fakeStore) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	if _, ok := f.active[id]; !ok {
		return store.ErrNotFound
	}
	f.active[id] = active
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(opts Options, fs *fakeStore) *Server {
	logger := testLogger()
	ext := knowledge.New(nil, logger)
	if fs == nil {
		return NewServer(opts, processor.New(ext, nil, nil, logger), nil, logger)
	}
	return NewServer(opts, processor.New(ext, fs, nil, logger), fs, logger)
}

func do(srv *Server, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(Options{}, nil)

	w := do(srv, "GET", "/health", "")
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %q", body["status"])
	}
}

func TestStatusEndpoint(t *testing.T) {
	srv := newTestServer(Options{}, &fakeStore{})

	w := do(srv, "GET", "/api/v1/linekb/status", "")
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	var body map[string]any
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["agent"] != "linekb" {
		t.Errorf("expected agent linekb, got %v", body["agent"])
	}
	if body["persists"] != true {
		t.Errorf("expected persists true, got %v", body["persists"])
	}
}

func TestNotFoundEndpoint(t *testing.T) {
	srv := newTestServer(Options{}, nil)

	w := do(srv, "GET", "/nonexistent", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestExtract_NeverWrites(t *testing.T) {
	fs := &fakeStore{}
	srv := newTestServer(Options{}, fs)

	w := do(srv, "POST", "/api/v1/kb/extract", export)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var out processor.Outcome
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(out.Entries) != 1 || !out.DryRun {
		t.Errorf("unexpected outcome %+v", out)
	}
	if out.Entries[0].Category != "料金" {
		t.Errorf("category = %q", out.Entries[0].Category)
	}
	if len(fs.written) != 0 {
		t.Error("extract must not persist")
	}
}

func TestExtract_EmptyBody(t *testing.T) {
	srv := newTestServer(Options{}, nil)

	w := do(srv, "POST", "/api/v1/kb/extract", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestExtract_TooLarge(t *testing.T) {
	srv := newTestServer(Options{MaxUploadBytes: 16}, nil)

	w := do(srv, "POST", "/api/v1/kb/extract", export)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", w.Code)
	}
}

func TestImport_Persists(t *testing.T) {
	fs := &fakeStore{}
	srv := newTestServer(Options{}, fs)

	w := do(srv, "POST", "/api/v1/kb/import?file_name=export.csv", export)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(fs.written) != 1 {
		t.Errorf("expected 1 written entry, got %d", len(fs.written))
	}

	var out processor.Outcome
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if out.Upsert.Inserted != 1 || out.DryRun {
		t.Errorf("unexpected outcome %+v", out)
	}
}

func TestImport_NoStore(t *testing.T) {
	srv := newTestServer(Options{}, nil)

	w := do(srv, "POST", "/api/v1/kb/import", export)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", w.Code)
	}
}

func TestAuth_RequiresBearerToken(t *testing.T) {
	srv := newTestServer(Options{APIToken: "s3cret"}, nil)

	if w := do(srv, "POST", "/api/v1/kb/extract", export); w.Code != http.StatusUnauthorized {
		t.Errorf("no token: expected 401, got %d", w.Code)
	}
	if w := do(srv, "POST", "/api/v1/kb/extract", export, "Authorization", "Bearer wrong"); w.Code != http.StatusUnauthorized {
		t.Errorf("wrong token: expected 401, got %d", w.Code)
	}
	if w := do(srv, "POST", "/api/v1/kb/extract", export, "Authorization", "Bearer s3cret"); w.Code != http.StatusOK {
		t.Errorf("right token: expected 200, got %d", w.Code)
	}
	if w := do(srv, "GET", "/health", ""); w.Code != http.StatusOK {
		t.Errorf("health must stay open, got %d", w.Code)
	}
}

func TestListEntries_Filters(t *testing.T) {
	fs := &fakeStore{rows: []store.EntryRow{{ID: uuid.New()}}}
	srv := newTestServer(Options{}, fs)

	w := do(srv, "GET", "/api/v1/kb/entries?category=%E6%96%99%E9%87%91&limit=5&offset=10&active=true", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	want := store.ListOpts{Category: "料金", Limit: 5, Offset: 10, ActiveOnly: true}
	if fs.opts != want {
		t.Errorf("opts = %+v, want %+v", fs.opts, want)
	}

	var body struct {
		Count int `json:"count"`
	}
	json.NewDecoder(w.Body).Decode(&body)
	if body.Count != 1 {
		t.Errorf("count = %d", body.Count)
	}
}

func TestListEntries_BadQuery(t *testing.T) {
	srv := newTestServer(Options{}, &fakeStore{})

	for _, q := range []string{"limit=x", "offset=-1", "active=maybe"} {
		if w := do(srv, "GET", "/api/v1/kb/entries?"+q, ""); w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", q, w.Code)
		}
	}
}

func TestPatchEntry(t *testing.T) {
	id := uuid.New()
	fs := &fakeStore{active: map[uuid.UUID]bool{id: true}}
	srv := newTestServer(Options{}, fs)

	w := do(srv, "PATCH", "/api/v1/kb/entries/"+id.String(), `{"is_active":false}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if fs.active[id] {
		t.Error("expected entry to be deactivated")
	}

	cases := []struct {
		name   string
		target string
		body   string
		want   int
	}{
		{"unknown id", "/api/v1/kb/entries/" + uuid.New().String(), `{"is_active":true}`, http.StatusNotFound},
		{"bad id", "/api/v1/kb/entries/not-a-uuid", `{"is_active":true}`, http.StatusBadRequest},
		{"missing field", "/api/v1/kb/entries/" + id.String(), `{}`, http.StatusBadRequest},
		{"bad json", "/api/v1/kb/entries/" + id.String(), `{`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if w := do(srv, "PATCH", tc.target, tc.body); w.Code != tc.want {
				t.Errorf("expected %d, got %d", tc.want, w.Code)
			}
		})
	}
}

func TestEntries_NoStore(t *testing.T) {
	srv := newTestServer(Options{}, nil)

	if w := do(srv, "GET", "/api/v1/kb/entries", ""); w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", w.Code)
	}
}
