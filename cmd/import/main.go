// Command import loads CSV exports of a legacy deployment into the live
// database. Run with --dry-run first to see what a real run would do.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"taskhub/internal/config"
	"taskhub/internal/db"
	"taskhub/internal/importer"
	"taskhub/internal/model"
)

func main() {
	if err := newImportCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newImportCmd() *cobra.Command {
	var opts importer.Options

	cmd := &cobra.Command{
		Use:   "taskhub-import",
		Short: "Import legacy CSV exports into the TaskHub database",
		Long: "Import CSV exports (tasks, ai_history, profiles, user_settings) into " +
			"the live schema, preserving legacy identifiers where possible and " +
			"matching rows to local users by email or another field.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			logger, err := zap.NewProduction()
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer logger.Sync()

			gormDB, err := db.Open(cfg)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			if err := gormDB.AutoMigrate(
				&model.User{},
				&model.Task{},
				&model.AIHistory{},
				&model.Profile{},
			); err != nil {
				return fmt.Errorf("auto-migrate: %w", err)
			}

			_, err = importer.New(gormDB, logger, cmd.OutOrStdout()).Run(cmd.Context(), opts)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.TasksCSV, "tasks-csv", "", "Path to the tasks CSV export")
	flags.StringVar(&opts.HistoryCSV, "ai-history-csv", "", "Path to the AI history CSV export")
	flags.StringVar(&opts.ProfilesCSV, "profiles-csv", "", "Path to the profiles CSV export")
	flags.StringVar(&opts.SettingsCSV, "user-settings-csv", "", "Path to the user settings CSV export")
	flags.StringVar(&opts.UserColumn, "user-column", "", "CSV column used for user matching (auto-detected when empty)")
	flags.StringVar(&opts.UserField, "user-field", "email", "Local user column used for lookups (e.g. email, id)")
	flags.StringVar(&opts.Encoding, "encoding", "utf-8", "File encoding of the CSV exports")
	flags.BoolVar(&opts.DryRun, "dry-run", false, "Report actions without committing any writes")

	return cmd
}
