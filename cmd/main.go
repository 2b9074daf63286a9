package main

import (
	"fmt"
	"os"

	"github.com/farellandr/secretsanta/config"
	"github.com/spf13/cobra"
)

const programName = "secretsanta"

var (
	globalFlags = struct {
		debug bool
	}{}
	cfg *config.Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:   programName,
		Short: "Secret Santa gift-exchange service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveRun(cmd, args)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().
		BoolVarP(&globalFlags.debug, "debug", "D", false, "enable debug logging")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if globalFlags.debug {
			loaded.LogLevel = "debug"
		}
		cfg = loaded
		return nil
	}

	rootCmd.AddCommand(serveCommand())
	rootCmd.AddCommand(migrateCommand())

	if err := rootCmd.Execute(); err != nil {
		// cobra has already printed the error
		os.Exit(1)
	}
}
