package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/linekb/internal/config"
	"github.com/MikeSquared-Agency/linekb/internal/importer"
	"github.com/MikeSquared-Agency/linekb/internal/processor"
	"github.com/MikeSquared-Agency/linekb/internal/slack"
	"github.com/MikeSquared-Agency/linekb/internal/store"
)

var (
	importDir    string
	importFile   string
	importDryRun bool
	importSource string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a directory of exports into the knowledge store",
	Long: `Import every .csv/.txt export under a directory (or a single file).
Progress is kept in $LINEKB_STATE_PATH so an interrupted run resumes
where it stopped.

Examples:
  linekb import --dir ./exports
  linekb import --file talk.csv --dry-run`,
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVar(&importDir, "dir", "", "Directory of exports")
	importCmd.Flags().StringVar(&importFile, "file", "", "Import a single export")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Extract only, write nothing")
	importCmd.Flags().StringVar(&importSource, "source", "", "Source label for entries (default: $LINEKB_SOURCE)")
	importCmd.MarkFlagsMutuallyExclusive("dir", "file")
	importCmd.MarkFlagsOneRequired("dir", "file")
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ext, err := newExtractor(cfg)
	if err != nil {
		return err
	}

	var writer processor.EntryWriter
	if !importDryRun {
		if cfg.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required unless --dry-run is set")
		}
		db, err := store.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()
		if err := db.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		writer = db
	}

	source := importSource
	if source == "" {
		source = cfg.Source
	}

	runner := importer.NewRunner(importer.Config{
		Dir:        importDir,
		SingleFile: importFile,
		DryRun:     importDryRun,
		Source:     source,
		StatePath:  cfg.StatePath,
	}, writer, ext, slog.Default())

	// Slack poster (optional, summaries are logged without it)
	if cfg.SlackBotToken != "" && cfg.SlackChannel != "" {
		runner.WithNotifier(slack.NewPoster(cfg.SlackBotToken, cfg.SlackChannel, slog.Default()))
	}

	sum, err := runner.Run(ctx)
	if sum != nil {
		fmt.Fprint(os.Stdout, importer.FormatSummary(sum))
	}
	return err
}
