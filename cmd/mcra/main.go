package main

import (
	"fmt"
	"os"

	"mcra/internal/cli"
	"mcra/internal/cli/commands"
	"mcra/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:           "mcra",
		Short:         "Correctness results analyzer",
		Long:          `Turns the result summaries and raw logs of a correctness test run into one CSV report with a row per test, including the error message found in the log of every test that did not pass.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags)

	// Execute root command
	err := rootCmd.Execute()
	cmds.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
