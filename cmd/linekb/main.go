package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/linekb/internal/config"
	"github.com/MikeSquared-Agency/linekb/internal/knowledge"
	"github.com/MikeSquared-Agency/linekb/internal/rules"
)

var rulesPath string

var rootCmd = &cobra.Command{
	Use:   "linekb",
	Short: "linekb - LINE chat export to knowledge base",
	Long: `linekb reads LINE official-account chat exports and turns the
customer questions and shop answers in them into categorized
question/answer entries for a knowledge base.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(config.Load().LogLevel)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rulesPath, "rules", "", "YAML rules override file (default: $LINEKB_RULES_PATH)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newExtractor builds an extractor from the --rules flag, falling back to
// the configured rules path.
func newExtractor(cfg config.Config) (*knowledge.Extractor, error) {
	path := rulesPath
	if path == "" {
		path = cfg.RulesPath
	}
	r, err := rules.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	if path != "" {
		slog.Info("rules loaded", "path", path, "categories", len(r.Categories))
	}
	return knowledge.New(r, slog.Default()), nil
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
