package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/p2lu/turingtoy/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "turingtoy",
	Short: "turingtoy simulates single-tape Turing machines",
	Long: `turingtoy runs deterministic single-tape Turing machines described in YAML or JSON.

Exit status is 0 when every run halts in the done state, 2 when a run stops
without reaching it, and 1 on errors.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exit *cli.ExitCodeError
		if errors.As(err, &exit) {
			if exit.Err != nil {
				fmt.Fprintln(os.Stderr, "Error:", exit.Err)
			}
			os.Exit(exit.Code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitError)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().Bool("debug", false, "Log engine steps to stderr")
}
