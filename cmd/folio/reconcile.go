package main

import (
	"encoding/json"
	"log/slog"
	"os"

	"folio/internal/note"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the notes table and its indexes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, _, err := openDB(); err != nil {
			return err
		}
		slog.Info("migrations applied")
		return nil
	},
}

// The operator running the CLI is the admin.
var operator = note.Actor{Admin: true}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Upsert the curated notes",
	Long:  `Seed creates or updates every curated note, matching stored notes by slug, then by title or a known former title.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, gdb, err := openDB()
		if err != nil {
			return err
		}
		results, err := newService(gdb).Seed(cmd.Context(), operator)
		if err != nil {
			return err
		}
		return printJSON(results)
	},
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete public notes with duplicate titles",
	Long:  `Cleanup keeps the most recently updated public note of every title and permanently deletes the others.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, gdb, err := openDB()
		if err != nil {
			return err
		}
		report, err := newService(gdb).Cleanup(cmd.Context(), operator)
		if err != nil {
			return err
		}
		return printJSON(report)
	},
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	rootCmd.AddCommand(migrateCmd, seedCmd, cleanupCmd)
}
