package main

import (
	"github.com/p2lu/turingtoy/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <machine-file>",
	Short: "Export the transition table as a Mermaid diagram",
	Long: `Outputs a Mermaid flowchart (graph LR) with one node per state and one edge per
symbol entry. With --input, the machine is run first and the states it passed
through are highlighted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.GraphOptions{MachinePath: args[0]}
		if cmd.Flags().Changed("input") {
			input, _ := cmd.Flags().GetString("input")
			opts.Input = &input
		}
		if cmd.Flags().Changed("steps") {
			steps, _ := cmd.Flags().GetInt("steps")
			opts.Steps = &steps
		}
		return cli.Graph(cmd.Context(), opts, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().StringP("input", "i", "", "Run on this tape and highlight visited states")
	graphCmd.Flags().IntP("steps", "n", 0, "Step budget of the highlighted run")
}
