package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
	"github.com/p2lu/turingtoy/pkg/domain"
)

// TraceOptions controls RenderTrace.
type TraceOptions struct {
	// Profile is the color profile; termenv.Ascii disables colors.
	Profile termenv.Profile
}

// RenderTrace writes one line per history entry: step number, state, tape with the
// head cell bracketed, and the instruction applied.
func RenderTrace(w io.Writer, history []domain.HistoryEntry, opts TraceOptions) error {
	out := termenv.NewOutput(w, termenv.WithProfile(opts.Profile))

	width := 0
	for _, h := range history {
		width = max(width, len([]rune(h.State)))
	}

	for i, h := range history {
		step := out.String(fmt.Sprintf("%4d", i+1)).Faint()
		state := out.String(fmt.Sprintf("%-*s", width, h.State)).Foreground(out.Color("#a78bfa")).Bold()
		tape := renderTape(out, h.Memory, h.Position)
		transition := out.String(h.Transition.String()).Foreground(out.Color("#38bdf8"))

		if _, err := fmt.Fprintf(w, "%s  %s  %s  %s\n", step, state, tape, transition); err != nil {
			return err
		}
	}
	return nil
}

func renderTape(out *termenv.Output, memory string, position int) string {
	cells := []rune(memory)
	var sb strings.Builder
	for i, c := range cells {
		if i == position {
			sb.WriteString(out.String("[" + string(c) + "]").Foreground(out.Color("#facc15")).Bold().String())
			continue
		}
		sb.WriteString(" " + string(c) + " ")
	}
	return sb.String()
}

// MarkdownTrace builds a markdown table of the history, followed by the outcome when
// res is not nil.
func MarkdownTrace(history []domain.HistoryEntry, res *domain.Result) string {
	var sb strings.Builder
	sb.WriteString("| Step | State | Reading | Position | Tape | Transition |\n")
	sb.WriteString("|---:|---|---|---:|---|---|\n")
	for i, h := range history {
		fmt.Fprintf(&sb, "| %d | %s | %s | %d | %s | %s |\n",
			i+1,
			escapeCell(h.State),
			code(h.Reading),
			h.Position,
			code(headMarked(h.Memory, h.Position)),
			code(h.Transition.String()),
		)
	}

	if res != nil {
		fmt.Fprintf(&sb, "\n**%s** after %d steps in state %s, tape %s\n",
			res.Reason, res.Steps, code(res.FinalState), code(res.Tape))
	}
	return sb.String()
}

func headMarked(memory string, position int) string {
	cells := []rune(memory)
	if position < 0 || position >= len(cells) {
		return memory
	}
	return string(cells[:position]) + "[" + string(cells[position]) + "]" + string(cells[position+1:])
}

func code(s string) string {
	if s == "" {
		return "` `"
	}
	return "`" + strings.ReplaceAll(escapeCell(s), "`", "'") + "`"
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
