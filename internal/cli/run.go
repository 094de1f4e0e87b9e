package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/p2lu/turingtoy/internal/presentation/tui"
	"github.com/p2lu/turingtoy/pkg/adapters/file"
	"github.com/p2lu/turingtoy/pkg/domain"
)

// Output formats of the run command.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// RunOptions holds the flags of the run command.
type RunOptions struct {
	MachinePath string
	Inputs      []string
	Steps       *int
	Format      string
	Trace       bool
	SaveDir     string
	Debug       bool
	NoColor     bool
	Parallelism int
}

// RunOutput is one entry of the JSON output.
type RunOutput struct {
	Input  string         `json:"input"`
	RunID  string         `json:"run_id,omitempty"`
	Result *domain.Result `json:"result"`
}

// Run executes the machine on every input and writes the outcome to w.
// It returns an *ExitCodeError with ExitNotAccepting when a run does not reach done.
func Run(ctx context.Context, opts RunOptions, w io.Writer) error {
	logger := NewLogger(opts.Debug)

	machine, err := file.LoadMachine(opts.MachinePath)
	if err != nil {
		return err
	}

	inputs := opts.Inputs
	if len(inputs) == 0 {
		inputs = []string{""}
	}

	engine := createEngine(EngineOptions{Debug: opts.Debug}, logger)
	results, err := engine.RunBatch(ctx, machine, inputs, opts.Steps, opts.Parallelism)
	if err != nil {
		return err
	}

	outputs := make([]RunOutput, len(results))
	for i, res := range results {
		outputs[i] = RunOutput{Input: inputs[i], Result: res}
	}

	if opts.SaveDir != "" {
		store := file.NewStore(opts.SaveDir)
		for i := range outputs {
			id := uuid.NewString()
			if err := store.Save(ctx, id, outputs[i].Result); err != nil {
				return fmt.Errorf("failed to save run: %w", err)
			}
			outputs[i].RunID = id
			logger.Info("run saved", "run_id", id, "dir", opts.SaveDir)
		}
	}

	switch opts.Format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(outputs)
	case FormatMarkdown:
		err = writeMarkdown(w, outputs, opts.NoColor)
	case "", FormatText:
		err = writeText(w, outputs, opts)
	default:
		err = fmt.Errorf("unknown format %q (want text, json or markdown)", opts.Format)
	}
	if err != nil {
		return err
	}

	for _, out := range outputs {
		if !out.Result.Halted {
			return &ExitCodeError{Code: ExitNotAccepting}
		}
	}
	return nil
}

func writeText(w io.Writer, outputs []RunOutput, opts RunOptions) error {
	profile := ColorProfile(w, opts.NoColor)
	for _, out := range outputs {
		res := out.Result
		if opts.Trace {
			if err := tui.RenderTrace(w, res.History, tui.TraceOptions{Profile: profile}); err != nil {
				return err
			}
		}
		printSystemMessage(w, "input %q: %s after %d steps in state %q, tape %q",
			out.Input, res.Reason, res.Steps, res.FinalState, res.Tape)
		if out.RunID != "" {
			printSystemMessage(w, "saved as %s", out.RunID)
		}
	}
	return nil
}

func writeMarkdown(w io.Writer, outputs []RunOutput, noColor bool) error {
	var sb strings.Builder
	for _, out := range outputs {
		fmt.Fprintf(&sb, "## Input `%s`\n\n", out.Input)
		if out.RunID != "" {
			fmt.Fprintf(&sb, "Run ID: `%s`\n\n", out.RunID)
		}
		sb.WriteString(tui.MarkdownTrace(out.Result.History, out.Result))
		sb.WriteString("\n")
	}

	if noColor || !IsTerminal(w) {
		_, err := io.WriteString(w, sb.String())
		return err
	}

	render, err := tui.NewRenderer(0)
	if err != nil {
		return err
	}
	rendered, err := render(sb.String())
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, rendered)
	return err
}
