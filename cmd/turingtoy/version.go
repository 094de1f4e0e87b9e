package main

import (
	"fmt"
	"strings"

	"github.com/p2lu/turingtoy"
	"github.com/p2lu/turingtoy/internal/cli"
	"github.com/p2lu/turingtoy/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of turingtoy",
	Run: func(cmd *cobra.Command, args []string) {
		version := strings.TrimSpace(turingtoy.Version)
		out := cmd.OutOrStdout()
		if cli.IsTerminal(out) {
			tui.PrintBanner(out, cli.ColorProfile(out, false), version)
			return
		}
		fmt.Fprintf(out, "turingtoy version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
