package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/MikeSquared-Agency/linekb/internal/hermes"
	"github.com/MikeSquared-Agency/linekb/internal/knowledge"
	"github.com/MikeSquared-Agency/linekb/internal/store"
)

// EntryWriter persists extracted entries. *store.Store satisfies it.
type EntryWriter interface {
	UpsertEntries(ctx context.Context, origin string, entries []knowledge.Entry) (store.UpsertResult, error)
}

// Publisher sends events. *hermes.Client satisfies it.
type Publisher interface {
	Publish(subject string, data any) error
}

// Processor turns uploaded chat exports into stored knowledge entries.
type Processor struct {
	source    string
	extractor *knowledge.Extractor
	store     EntryWriter
	hermes    Publisher
	logger    *slog.Logger
}

// New builds a processor. A nil store makes every import a dry run; a nil
// publisher disables the imported event.
func New(ext *knowledge.Extractor, s EntryWriter, h Publisher, logger *slog.Logger) *Processor {
	return &Processor{
		extractor: ext,
		store:     s,
		hermes:    h,
		logger:    logger,
	}
}

// WithSource labels every extracted entry with source instead of the
// default "LINE" prefix.
func (p *Processor) WithSource(source string) *Processor {
	p.source = source
	return p
}

// Persists reports whether imports reach a store.
func (p *Processor) Persists() bool {
	return p.store != nil
}

// Outcome is what one import produced.
type Outcome struct {
	knowledge.Result
	Upsert store.UpsertResult `json:"upsert"`
	DryRun bool               `json:"dry_run"`
}

// Process extracts entries from one export and persists them unless dryRun
// is set or no store is configured.
func (p *Processor) Process(ctx context.Context, origin, content string, dryRun bool) (*Outcome, error) {
	res := p.extractor.ExtractText(content)
	res.Entries = knowledge.Relabel(res.Entries, p.source)
	out := &Outcome{Result: res, DryRun: dryRun || p.store == nil}

	if out.DryRun || len(res.Entries) == 0 {
		return out, nil
	}

	up, err := p.store.UpsertEntries(ctx, origin, res.Entries)
	if err != nil {
		return nil, fmt.Errorf("persist entries: %w", err)
	}
	out.Upsert = up
	return out, nil
}

// HandleTranscriptUploaded is the NATS handler for linekb.transcript.uploaded.
func (p *Processor) HandleTranscriptUploaded(subject string, data []byte) {
	ctx := context.Background()

	var evt hermes.TranscriptUploadedEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		p.logger.Error("failed to parse upload event", "error", err)
		return
	}
	if evt.Content == "" {
		p.logger.Warn("upload event without content", "upload_id", evt.UploadID)
		return
	}

	p.logger.Info("processing upload",
		"upload_id", evt.UploadID,
		"file_name", evt.FileName,
		"bytes", len(evt.Content),
	)

	out, err := p.Process(ctx, evt.FileName, evt.Content, false)
	if err != nil {
		p.logger.Error("import failed", "upload_id", evt.UploadID, "error", err)
		return
	}

	if !out.Parse.HeaderFound {
		p.logger.Warn("no header signature in upload", "upload_id", evt.UploadID)
	}

	p.logger.Info("upload processed",
		"upload_id", evt.UploadID,
		"entries", len(out.Entries),
		"inserted", out.Upsert.Inserted,
		"updated", out.Upsert.Updated,
		"dry_run", out.DryRun,
	)

	if p.hermes == nil {
		return
	}
	if err := p.hermes.Publish(hermes.SubjectEntriesImported, hermes.ImportedEvent{
		UploadID:    evt.UploadID,
		FileName:    evt.FileName,
		Entries:     len(out.Entries),
		EmbeddedFAQ: out.EmbeddedFAQ,
		Inserted:    out.Upsert.Inserted,
		Updated:     out.Upsert.Updated,
		SkippedRows: out.Parse.Skipped,
		DryRun:      out.DryRun,
		Timestamp:   time.Now().UTC(),
	}); err != nil {
		p.logger.Warn("failed to publish imported event", "error", err)
	}
}
