// Package importer runs resumable batch imports of LINE chat exports from
// disk into the knowledge store.
package importer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/MikeSquared-Agency/linekb/internal/knowledge"
	"github.com/MikeSquared-Agency/linekb/internal/processor"
)

// Config holds the import command configuration.
type Config struct {
	Dir        string
	SingleFile string // import one file only
	DryRun     bool
	Source     string // source label for persisted entries (default: "LINE")
	StatePath  string
}

// FileSummary is what one export contributed to a run.
type FileSummary struct {
	Path        string
	Messages    int
	SkippedRows int
	Entries     int
	EmbeddedFAQ int
	Duplicates  int
	Inserted    int
	Updated     int
	Errors      int
}

// Summary aggregates a whole run.
type Summary struct {
	Files     []FileSummary
	Entries   int
	Inserted  int
	Updated   int
	Errors    int
	DryRun    bool
	StatePath string
}

// Notifier receives the rendered run summary. *slack.Poster satisfies it.
type Notifier interface {
	PostSummary(ctx context.Context, text string) (string, error)
}

// Runner orchestrates the import.
type Runner struct {
	cfg       Config
	store     processor.EntryWriter
	extractor *knowledge.Extractor
	dedup     *Deduper
	notifier  Notifier
	logger    *slog.Logger
}

// NewRunner creates an import runner. A nil store forces a dry run.
func NewRunner(cfg Config, s processor.EntryWriter, ext *knowledge.Extractor, logger *slog.Logger) *Runner {
	if s == nil {
		cfg.DryRun = true
	}
	return &Runner{
		cfg:       cfg,
		store:     s,
		extractor: ext,
		dedup:     NewDeduper(),
		logger:    logger,
	}
}

// WithNotifier posts the run summary once the run ends.
func (r *Runner) WithNotifier(n Notifier) *Runner {
	r.notifier = n
	return r
}

// Run imports every pending file. Progress is saved after each file so an
// interrupted run picks up where it stopped; dry runs leave the state file
// untouched.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	state, err := LoadState(r.cfg.StatePath)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}

	files, err := r.discoverFiles()
	if err != nil {
		return nil, fmt.Errorf("discover files: %w", err)
	}

	var pending []string
	for _, path := range files {
		if state.IsProcessed(path) {
			continue
		}
		pending = append(pending, path)
	}

	state.FilesRemaining = len(pending)
	r.logger.Info("files discovered",
		"total", len(files),
		"pending", len(pending),
		"dry_run", r.cfg.DryRun,
	)

	sum := &Summary{DryRun: r.cfg.DryRun, StatePath: state.Path()}
	save := func() {
		if r.cfg.DryRun {
			return
		}
		if err := state.Save(); err != nil {
			r.logger.Warn("failed to save state", "path", state.Path(), "error", err)
		}
	}

	for _, path := range pending {
		select {
		case <-ctx.Done():
			r.logger.Info("import interrupted, saving state")
			save()
			r.notify(context.WithoutCancel(ctx), sum)
			return sum, ctx.Err()
		default:
		}

		fs := r.importFile(ctx, path, state)
		sum.Files = append(sum.Files, fs)
		sum.Entries += fs.Entries
		sum.Inserted += fs.Inserted
		sum.Updated += fs.Updated
		sum.Errors += fs.Errors

		if fs.Errors == 0 {
			state.MarkProcessed(path)
		}
		state.FilesRemaining--
		save()
	}

	r.logger.Info("import complete",
		"files_processed", len(sum.Files),
		"entries", sum.Entries,
		"inserted", sum.Inserted,
		"updated", sum.Updated,
		"errors", sum.Errors,
		"dry_run", r.cfg.DryRun,
	)
	r.notify(ctx, sum)
	return sum, nil
}

// notify posts the summary when a notifier is set, or logs it otherwise.
func (r *Runner) notify(ctx context.Context, sum *Summary) {
	if len(sum.Files) == 0 {
		return
	}
	text := FormatSummary(sum)
	if r.notifier == nil {
		r.logger.Debug("import summary (no notifier configured)", "summary", text)
		return
	}
	if _, err := r.notifier.PostSummary(ctx, text); err != nil {
		r.logger.Warn("failed to post import summary, logging instead",
			"error", err,
			"summary", text,
		)
	}
}

func (r *Runner) importFile(ctx context.Context, path string, state *State) FileSummary {
	fs := FileSummary{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		r.logger.Warn("failed to read export", "path", path, "error", err)
		state.AddError(fmt.Sprintf("read %s: %v", path, err))
		fs.Errors++
		return fs
	}

	res := r.extractor.ExtractText(string(data))
	fs.Messages = res.Parse.Messages
	fs.SkippedRows = res.Parse.Skipped
	fs.EmbeddedFAQ = res.EmbeddedFAQ

	if !res.Parse.HeaderFound {
		r.logger.Warn("no header signature, file yields no entries", "path", path)
	}

	entries := knowledge.Relabel(res.Entries, r.cfg.Source)
	entries, fs.Duplicates = r.dedup.Filter(entries)
	fs.Entries = len(entries)
	state.EntriesFound += len(entries)

	r.logger.Info("file extracted",
		"path", path,
		"messages", fs.Messages,
		"entries", fs.Entries,
		"duplicates", fs.Duplicates,
	)

	if r.cfg.DryRun || len(entries) == 0 {
		return fs
	}

	up, err := r.store.UpsertEntries(ctx, filepath.Base(path), entries)
	if err != nil {
		r.logger.Error("persist failed", "path", path, "error", err)
		state.AddError(fmt.Sprintf("persist %s: %v", path, err))
		fs.Errors++
		return fs
	}
	fs.Inserted = up.Inserted
	fs.Updated = up.Updated
	state.EntriesWritten += up.Inserted + up.Updated
	return fs
}

func (r *Runner) discoverFiles() ([]string, error) {
	if r.cfg.SingleFile != "" {
		path := expandHome(r.cfg.SingleFile)
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("single file not found: %s", path)
		}
		return []string{path}, nil
	}

	dir := expandHome(r.cfg.Dir)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	var files []string
	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if info.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(info.Name())) {
		case ".csv", ".txt":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		r.logger.Warn("error walking import dir", "dir", dir, "error", err)
	}

	sort.Strings(files)
	return files, nil
}

// FormatSummary renders per-file counts for the terminal.
func FormatSummary(sum *Summary) string {
	var sb strings.Builder
	sb.WriteString("\n=== Import Summary ===\n")

	for _, f := range sum.Files {
		fmt.Fprintf(&sb, "  - %s: %d messages, %d entries (%d embedded FAQ, %d duplicates)",
			filepath.Base(f.Path), f.Messages, f.Entries, f.EmbeddedFAQ, f.Duplicates)
		if !sum.DryRun {
			fmt.Fprintf(&sb, ", %d inserted, %d updated", f.Inserted, f.Updated)
		}
		if f.SkippedRows > 0 {
			fmt.Fprintf(&sb, " [%d rows skipped]", f.SkippedRows)
		}
		if f.Errors > 0 {
			fmt.Fprintf(&sb, " (%d errors)", f.Errors)
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "Files processed: %d\n", len(sum.Files))
	fmt.Fprintf(&sb, "Entries: %d\n", sum.Entries)
	if sum.DryRun {
		sb.WriteString("Mode: DRY RUN (no DB writes)\n")
	} else {
		fmt.Fprintf(&sb, "Inserted: %d\n", sum.Inserted)
		fmt.Fprintf(&sb, "Updated: %d\n", sum.Updated)
		fmt.Fprintf(&sb, "State file: %s\n", sum.StatePath)
	}
	fmt.Fprintf(&sb, "Errors: %d\n", sum.Errors)
	return sb.String()
}
