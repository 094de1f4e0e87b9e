package runtime

import (
	"slices"
	"strings"

	"github.com/p2lu/turingtoy/pkg/domain"
)

// Tape is an unbounded sequence of symbol cells with a single read/write head.
// It grows by one blank cell whenever the head steps past either end.
type Tape struct {
	cells []string
	head  int
	blank string
}

// NewTape creates a tape holding one cell per rune of input, with the head on the
// first cell. An empty input starts as a single blank cell.
func NewTape(input, blank string) *Tape {
	cells := make([]string, 0, len(input))
	for _, r := range input {
		cells = append(cells, string(r))
	}
	t := &Tape{cells: cells, blank: blank}
	t.EnsureBounds()
	return t
}

// Read returns the symbol under the head.
func (t *Tape) Read() string {
	return t.cells[t.head]
}

// Write overwrites the symbol under the head.
func (t *Tape) Write(symbol string) {
	t.cells[t.head] = symbol
}

// Move shifts the head by one cell and extends the tape if needed.
func (t *Tape) Move(d domain.Direction) {
	switch d {
	case domain.Left:
		t.head--
	case domain.Right:
		t.head++
	}
	t.EnsureBounds()
}

// EnsureBounds keeps the head on a valid cell: a head past the end appends one
// blank, a negative head prepends one blank and resets the head to 0.
func (t *Tape) EnsureBounds() {
	if t.head >= len(t.cells) {
		t.cells = append(t.cells, t.blank)
	} else if t.head < 0 {
		t.cells = slices.Insert(t.cells, 0, t.blank)
		t.head = 0
	}
}

// Trim removes leading then trailing blank cells.
func (t *Tape) Trim() {
	start := 0
	for start < len(t.cells) && t.cells[start] == t.blank {
		start++
	}
	end := len(t.cells)
	for end > start && t.cells[end-1] == t.blank {
		end--
	}
	t.cells = t.cells[start:end]
	if t.head -= start; t.head < 0 {
		t.head = 0
	}
}

// Position returns the head index.
func (t *Tape) Position() int {
	return t.head
}

// Len returns the number of cells.
func (t *Tape) Len() int {
	return len(t.cells)
}

func (t *Tape) String() string {
	return strings.Join(t.cells, "")
}
