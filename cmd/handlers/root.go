package handlers

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"storygen/internal/config"
	"storygen/internal/logger"
)

var (
	cfgFile string
	debug   bool
)

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "storygen",
		Short: "storygen turns a team's latest match result into social-media story copy.",
		Long: `storygen fetches a team's most recent match from TheSportsDB, asks
Gemini to write short-form story copy about it, validates the model's
output, and writes the result as JSON plus a themed HTML preview.`,
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.storygen.yaml or $HOME/.storygen.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(NewGenerateCmd())
	rootCmd.AddCommand(NewTeamsCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initConfig reads in the .env file and the config file if present.
func initConfig() {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: error loading .env file: %v\n", err)
		}
	}

	if _, err := config.Load(cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if debug || config.Get().App.Debug {
		logger.SetDebug()
	}

	if used := config.Get().App.ConfigFile; used != "" {
		logger.Debugf("using config file: %s", used)
	}
}
