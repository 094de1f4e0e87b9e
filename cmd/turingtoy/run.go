package main

import (
	"github.com/p2lu/turingtoy/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <machine-file>",
	Short: "Run a machine on one or more input tapes",
	Long: `Loads a machine definition and runs it on each --input tape.
Several inputs run in parallel; results are printed in input order.`,
	Example: `  turingtoy run increment.yaml --input 111
  turingtoy run increment.yaml -i 1 -i 11 --trace
  turingtoy run busy-beaver.yaml --steps 1000 --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		inputs, _ := cmd.Flags().GetStringArray("input")
		format, _ := cmd.Flags().GetString("format")
		trace, _ := cmd.Flags().GetBool("trace")
		saveDir, _ := cmd.Flags().GetString("save")
		noColor, _ := cmd.Flags().GetBool("no-color")
		parallelism, _ := cmd.Flags().GetInt("parallel")

		opts := cli.RunOptions{
			MachinePath: args[0],
			Inputs:      inputs,
			Format:      format,
			Trace:       trace,
			SaveDir:     saveDir,
			Debug:       debug,
			NoColor:     noColor,
			Parallelism: parallelism,
		}
		if cmd.Flags().Changed("steps") {
			steps, _ := cmd.Flags().GetInt("steps")
			opts.Steps = &steps
		}

		return cli.Run(cmd.Context(), opts, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringArrayP("input", "i", nil, "Initial tape (repeatable)")
	runCmd.Flags().IntP("steps", "n", 0, "Maximum number of instructions per run (unbounded when unset)")
	runCmd.Flags().StringP("format", "f", cli.FormatText, "Output format: text, json or markdown")
	runCmd.Flags().BoolP("trace", "t", false, "Print every step (text format)")
	runCmd.Flags().String("save", "", "Directory where run results are stored as JSON")
	runCmd.Flags().Bool("no-color", false, "Disable colored output")
	runCmd.Flags().Int("parallel", 0, "Maximum concurrent runs (0 = one per input)")
}
