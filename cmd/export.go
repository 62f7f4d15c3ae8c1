package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/user/jobboard/internal/config"
	"github.com/user/jobboard/internal/db"
	"go.uber.org/zap"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write fetched postings to a SQLite file",
	Long:  "Fetch job postings once and write them to a SQLite database (default: <data-dir>/snapshot.db) for use by other tools.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		path := cfg.SnapshotPath()
		if len(args) == 1 {
			path = args[0]
		}

		app, err := newApp(cfg, verboseFlag)
		if err != nil {
			return err
		}
		defer app.Close()

		app.session.Initialize(cmd.Context())
		if err := app.session.Err(); err != nil {
			return fmt.Errorf("failed to fetch postings: %w", err)
		}

		store, err := db.NewStore(path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer store.Close()

		postings := app.session.Postings()
		if err := store.SaveSnapshot(cmd.Context(), postings, time.Now()); err != nil {
			return fmt.Errorf("failed to save snapshot: %w", err)
		}

		app.logger.Info("snapshot exported", zap.String("path", path), zap.Int("count", len(postings)))
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d postings to %s\n", len(postings), path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
