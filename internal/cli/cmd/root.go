package cmd

import (
	"fmt"
	"os"

	"github.com/nookcoder/library-console/config"
	"github.com/spf13/cobra"
)

var (
	envName   string
	ephemeral bool

	app *console
)

var rootCmd = &cobra.Command{
	Use:           "libctl",
	Short:         "Console for the library catalog, patrons and loans",
	Long:          "Sign in to the library API and browse books, loans and members from the terminal.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(envName)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if ephemeral {
			cfg.Session.Backend = "memory"
		}
		app, err = newConsole(cfg, cmd.OutOrStdout())
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if app != nil {
			app.Close()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.show(cmd.Context(), "/")
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envName, "env", "", "config environment (config/envs/<env>.yaml)")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep the session in memory only")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
