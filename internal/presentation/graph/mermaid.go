package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/p2lu/turingtoy/pkg/domain"
)

// GraphOverlay contains run data to visualize on the graph.
type GraphOverlay struct {
	VisitedStates []string
	CurrentState  string
}

// OverlayFromHistory marks every state the history passed through, and final as current.
func OverlayFromHistory(history []domain.HistoryEntry, final string) *GraphOverlay {
	o := &GraphOverlay{CurrentState: final}
	for _, h := range history {
		o.VisitedStates = append(o.VisitedStates, h.State)
	}
	return o
}

// GenerateMermaid produces a Mermaid flowchart of the transition table.
// It applies semantic styling:
// - Start state: ([Stadium])
// - done: ((Circle))
// - Default: [Rectangle]
// Each symbol entry becomes one edge per state its instruction can switch to, or a
// self loop when it never changes state. Edges are labelled with the symbol read.
func GenerateMermaid(m *domain.Machine, overlay *GraphOverlay) string {
	states := collectStates(m)
	ids := make(map[string]string, len(states))
	for i, s := range states {
		ids[s] = fmt.Sprintf("q%d", i)
	}

	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, state := range states {
		opener, closer := "[", "]"
		switch {
		case state == domain.DoneState:
			opener, closer = "((", "))"
		case state == m.StartState:
			opener, closer = "([", "])"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", ids[state], opener, escapeLabel(state), closer)
	}

	for _, state := range m.Table.States() {
		st := m.Table[state]
		for _, symbol := range st.Symbols() {
			inst := st[symbol]
			label := escapeLabel(symbol)
			if symbol == m.Blank {
				label += " (blank)"
			}
			targets := inst.NextStates()
			if len(targets) == 0 {
				targets = []string{state}
			}
			for _, to := range targets {
				fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", ids[state], label, ids[to])
			}
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// black text keeps labels readable on both light and dark themes
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, s := range overlay.VisitedStates {
			id, ok := ids[s]
			if !ok || seen[id] {
				continue
			}
			seen[id] = true
			fmt.Fprintf(&sb, "    class %s visited;\n", id)
		}
		if id, ok := ids[overlay.CurrentState]; ok {
			fmt.Fprintf(&sb, "    class %s current;\n", id)
		}
	}

	return sb.String()
}

// collectStates returns every state named by the machine: the start state first,
// then table states and move targets in sorted order.
func collectStates(m *domain.Machine) []string {
	set := make(map[string]bool)
	for state, st := range m.Table {
		set[state] = true
		for _, inst := range st {
			for _, next := range inst.NextStates() {
				set[next] = true
			}
		}
	}
	delete(set, m.StartState)

	rest := make([]string, 0, len(set))
	for s := range set {
		rest = append(rest, s)
	}
	sort.Strings(rest)

	return append([]string{m.StartState}, rest...)
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "#quot;")
}
