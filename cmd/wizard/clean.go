package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"go-dashboard-wizard/internal/ai"
	"go-dashboard-wizard/internal/ingest"
	"go-dashboard-wizard/pkg/utils"
)

var (
	flagInstructions string
	flagOutPath      string
	flagTimeout      string
)

var cleanCmd = &cobra.Command{
	Use:   "clean <file>",
	Short: "Clean a tabular file once and write the cleaned CSV",
	Long:  `Reads a .csv, .tsv, .txt or .json file, sends it to the AI collaborator with your cleaning instructions, prints the change log, and writes the cleaned data as CSV.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		if flagInstructions == "" {
			return fmt.Errorf("--instructions is required")
		}

		path := args[0]
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		rawText, err := ingest.Normalize(filepath.Base(path), data)
		if err != nil {
			return err
		}

		timeout := c.HTTPTimeout()
		if flagTimeout != "" {
			timeout = utils.ParseDuration(flagTimeout)
		}

		client := ai.NewClient(ai.ClientOptions{
			APIKey:      c.AIAPIKey,
			BaseURL:     c.AIBaseURL,
			Model:       c.AIModel,
			HTTPTimeout: timeout,
			RetryMax:    c.RetryMaxAttempts,
			BaseDelay:   c.RetryBaseDelay(),
			MaxDelay:    c.RetryMaxDelay(),
		})

		result, err := client.CleanDataset(cmd.Context(), rawText, flagInstructions)
		if err != nil {
			return err
		}

		fmt.Printf("✓ %s\n", result.ChangeLog.Summary)
		for _, rr := range result.ChangeLog.Removed {
			fmt.Printf("  - removed: %v (%s)\n", rr.Row, rr.Reason)
		}

		out := flagOutPath
		if out == "" {
			ext := filepath.Ext(path)
			out = path[:len(path)-len(ext)] + ".cleaned.csv"
		}
		csvText, err := ingest.WriteCSV(result.Cleaned)
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, []byte(csvText), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		fmt.Printf("✓ Wrote %d rows to %s\n", len(result.Cleaned), out)
		return nil
	},
}

func init() {
	cleanCmd.Flags().StringVarP(&flagInstructions, "instructions", "i", "", "cleaning instructions for the AI collaborator")
	cleanCmd.Flags().StringVarP(&flagOutPath, "out", "o", "", "output path (default <file>.cleaned.csv)")
	cleanCmd.Flags().StringVar(&flagTimeout, "timeout", "", `AI call timeout as a duration, e.g. "90s" (overrides config)`)
	rootCmd.AddCommand(cleanCmd)
}
