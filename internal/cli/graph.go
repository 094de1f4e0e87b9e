package cli

import (
	"context"
	"io"

	"github.com/p2lu/turingtoy/internal/presentation/graph"
	"github.com/p2lu/turingtoy/pkg/adapters/file"
)

// GraphOptions holds the flags of the graph command.
type GraphOptions struct {
	MachinePath string
	// Input, when set, runs the machine and overlays the visited states.
	Input *string
	Steps *int
}

// Graph writes the Mermaid diagram of a machine to w.
func Graph(ctx context.Context, opts GraphOptions, w io.Writer) error {
	machine, err := file.LoadMachine(opts.MachinePath)
	if err != nil {
		return err
	}

	var overlay *graph.GraphOverlay
	if opts.Input != nil {
		res, err := createEngine(EngineOptions{}, NewLogger(false)).Run(ctx, machine, *opts.Input, opts.Steps)
		if err != nil {
			return err
		}
		overlay = graph.OverlayFromHistory(res.History, res.FinalState)
	}

	_, err = io.WriteString(w, graph.GenerateMermaid(machine, overlay))
	return err
}
