package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/linekb/internal/config"
)

var withStats bool

var extractCmd = &cobra.Command{
	Use:   "extract FILE",
	Short: "Extract knowledge entries from one export and print them as JSON",
	Long: `Parse a LINE chat export and print the extracted entries to stdout.
Nothing is written to the database.

Examples:
  linekb extract talk.csv
  linekb extract talk.csv --rules rules.yaml --stats`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().BoolVar(&withStats, "stats", false, "Print parse statistics along with the entries")
}

func runExtract(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read export: %w", err)
	}

	ext, err := newExtractor(config.Load())
	if err != nil {
		return err
	}
	res := ext.ExtractText(string(data))

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if withStats {
		return enc.Encode(res)
	}
	return enc.Encode(res.Entries)
}
