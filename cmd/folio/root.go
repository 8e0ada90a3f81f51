package main

import (
	"fmt"
	"log/slog"
	"os"

	"folio/internal/config"
	"folio/internal/db"
	"folio/internal/note"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	verbose bool
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Personal site backend: public and private notes",
	Long: `folio serves the notes API of a personal site and runs the
administrative reconciliation passes against its database.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(); err != nil {
			return err
		}
		level := cfg.Level()
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// openDB returns a migrated database for the loaded config.
func openDB() (config.Config, *gorm.DB, error) {
	gdb, err := db.Connect(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("connect: %w", err)
	}
	if err := db.AutoMigrateAndIndexes(gdb); err != nil {
		return config.Config{}, nil, fmt.Errorf("migrate: %w", err)
	}
	return cfg, gdb, nil
}

func newService(gdb *gorm.DB) *note.Service {
	return note.NewService(&note.Store{DB: gdb}, slog.Default())
}
