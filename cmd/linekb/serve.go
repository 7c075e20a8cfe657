package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/linekb/internal/api"
	"github.com/MikeSquared-Agency/linekb/internal/config"
	"github.com/MikeSquared-Agency/linekb/internal/hermes"
	"github.com/MikeSquared-Agency/linekb/internal/processor"
	"github.com/MikeSquared-Agency/linekb/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the NATS upload consumer",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	slog.Info("linekb starting", "port", cfg.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ext, err := newExtractor(cfg)
	if err != nil {
		return err
	}

	// Database (optional: without it the API only extracts)
	var (
		writer  processor.EntryWriter
		entries api.EntryStore
	)
	if cfg.DatabaseURL != "" {
		db, err := store.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()
		if err := db.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		writer, entries = db, db
		slog.Info("database connected")
	} else {
		slog.Warn("DATABASE_URL not set, running extract-only")
	}

	// NATS/Hermes (optional)
	var (
		hermesClient *hermes.Client
		publisher    processor.Publisher
	)
	if cfg.NatsURL != "" {
		hermesClient, err = hermes.NewClient(ctx, cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Warn("NATS unavailable, upload events disabled", "url", cfg.NatsURL, "error", err)
			hermesClient = nil
		} else {
			defer hermesClient.Close()
			publisher = hermesClient
			slog.Info("NATS connected", "url", cfg.NatsURL)
		}
	}

	proc := processor.New(ext, writer, publisher, slog.Default()).WithSource(cfg.Source)

	if hermesClient != nil {
		if err := hermesClient.QueueSubscribe(hermes.SubjectTranscriptUploaded, hermes.QueueGroup, proc.HandleTranscriptUploaded); err != nil {
			return fmt.Errorf("subscribe %s: %w", hermes.SubjectTranscriptUploaded, err)
		}
	}

	// HTTP API
	srv := api.NewServer(api.Options{
		Port:           cfg.Port,
		APIToken:       cfg.APIToken,
		MaxUploadBytes: cfg.MaxUploadBytes,
	}, proc, entries, slog.Default())

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	slog.Info("linekb ready", "port", cfg.Port, "persists", proc.Persists())

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
	case err := <-errCh:
		return fmt.Errorf("HTTP server: %w", err)
	}

	slog.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP shutdown", "error", err)
	}
	cancel()
	slog.Info("linekb stopped")
	return nil
}
