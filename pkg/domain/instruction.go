package domain

import "strings"

// Direction is the head movement of a move entry.
type Direction int

const (
	Left Direction = iota + 1
	Right
)

// Tag returns the definition-format tag of the direction ("L" or "R").
func (d Direction) Tag() string {
	switch d {
	case Left:
		return TagLeft
	case Right:
		return TagRight
	default:
		return ""
	}
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection maps a move tag to its Direction.
func ParseDirection(tag string) (Direction, bool) {
	switch tag {
	case TagLeft:
		return Left, true
	case TagRight:
		return Right, true
	}
	return 0, false
}

// EntryKind discriminates the Entry variant.
type EntryKind int

const (
	// EntryMove shifts the head one cell and optionally changes state.
	EntryMove EntryKind = iota + 1
	// EntryWrite overwrites the cell under the head. An empty symbol is a no-op.
	EntryWrite
	// EntryGuard runs a nested instruction if the head reads the guard symbol.
	EntryGuard
)

func (k EntryKind) String() string {
	switch k {
	case EntryMove:
		return "move"
	case EntryWrite:
		return "write"
	case EntryGuard:
		return "guard"
	default:
		return "unknown"
	}
}

// Entry is one action of a compound instruction.
type Entry struct {
	Kind EntryKind

	// Direction and NextState are used by EntryMove.
	// An empty NextState leaves the state unchanged.
	Direction Direction
	NextState string

	// Symbol is the symbol written by EntryWrite or matched by EntryGuard.
	Symbol string

	// Then is the instruction run by EntryGuard when Symbol matches.
	Then *Instruction
}

// MoveEntry builds a move entry. next may be empty.
func MoveEntry(d Direction, next string) Entry {
	return Entry{Kind: EntryMove, Direction: d, NextState: next}
}

// WriteEntry builds a write entry.
func WriteEntry(symbol string) Entry {
	return Entry{Kind: EntryWrite, Symbol: symbol}
}

// GuardEntry builds a guard entry running then when the head reads symbol.
func GuardEntry(symbol string, then Instruction) Entry {
	return Entry{Kind: EntryGuard, Symbol: symbol, Then: &then}
}

// Instruction is the normalized, compound form of a table entry: an ordered list of
// entries applied in sequence on a single fetch-execute cycle.
// A bare move tag is a one-entry instruction.
type Instruction struct {
	Entries []Entry
}

// NewInstruction builds an instruction from entries, in order.
func NewInstruction(entries ...Entry) Instruction {
	return Instruction{Entries: entries}
}

// IsEmpty reports whether the instruction has no entries.
// The driver treats an empty instruction like a missing one.
func (i Instruction) IsEmpty() bool {
	return len(i.Entries) == 0
}

// NextStates returns the states this instruction may switch to, including the ones
// set inside guards, in first-seen order.
func (i Instruction) NextStates() []string {
	var out []string
	seen := make(map[string]bool)
	var walk func(Instruction, int)
	walk = func(in Instruction, depth int) {
		if depth > 64 {
			return
		}
		for _, e := range in.Entries {
			switch e.Kind {
			case EntryMove:
				if e.NextState != "" && !seen[e.NextState] {
					seen[e.NextState] = true
					out = append(out, e.NextState)
				}
			case EntryGuard:
				if e.Then != nil {
					walk(*e.Then, depth+1)
				}
			}
		}
	}
	walk(i, 0)
	return out
}

// String renders the instruction in a compact, definition-like notation,
// e.g. `R` or `{write: 1, R: done}`.
func (i Instruction) String() string {
	if len(i.Entries) == 1 && i.Entries[0].Kind == EntryMove && i.Entries[0].NextState == "" {
		return i.Entries[0].Direction.Tag()
	}
	parts := make([]string, 0, len(i.Entries))
	for _, e := range i.Entries {
		switch e.Kind {
		case EntryMove:
			if e.NextState == "" {
				parts = append(parts, e.Direction.Tag())
			} else {
				parts = append(parts, e.Direction.Tag()+": "+e.NextState)
			}
		case EntryWrite:
			parts = append(parts, TagWrite+": "+e.Symbol)
		case EntryGuard:
			then := "{}"
			if e.Then != nil {
				then = e.Then.String()
			}
			parts = append(parts, e.Symbol+": "+then)
		}
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
