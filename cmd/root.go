package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/user/jobboard/internal/config"
	"github.com/user/jobboard/internal/tui"
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "jobboard",
	Short: "Job board listing viewer",
	Long:  "A TUI to browse job postings from a remote record store, search them by title and open their details.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// The TUI owns the terminal, so logs only go to the log file.
		app, err := newApp(cfg, false)
		if err != nil {
			return err
		}
		defer app.Close()

		return tui.Run(cmd.Context(), app.session)
	},
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("data-dir", "", "Data directory (default: ~/.jobboard)")
	flags.String("endpoint", "", "Record store URL to fetch postings from")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.BoolVarP(&verboseFlag, "verbose", "v", false, "Also write logs to stderr (list and export only)")

	viper.BindPFlag("data_dir", flags.Lookup("data-dir"))
	viper.BindPFlag("source.endpoint", flags.Lookup("endpoint"))
	viper.BindPFlag("log.level", flags.Lookup("log-level"))
}
