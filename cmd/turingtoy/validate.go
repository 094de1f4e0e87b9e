package main

import (
	"fmt"

	"github.com/p2lu/turingtoy/pkg/adapters/file"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <machine-file>...",
	Short: "Check that machine definitions load",
	Long: `Parses each definition and checks its header: a table, a start state and a
one-symbol blank. The table itself is not analysed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		failed := 0
		for _, path := range args {
			m, err := file.LoadMachine(path)
			if err != nil {
				fmt.Fprintf(out, "%s: %v\n", path, err)
				failed++
				continue
			}
			fmt.Fprintf(out, "%s: ok (%d states, start %q, blank %q)\n", path, len(m.Table), m.StartState, m.Blank)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d definitions failed to load", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
