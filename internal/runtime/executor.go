package runtime

import (
	"fmt"

	"github.com/p2lu/turingtoy/pkg/domain"
)

// DefaultMaxNesting bounds how many guard bodies may be open at once.
// The top-level instruction does not count.
const DefaultMaxNesting = 1024

// Config is the mutable configuration of a single run.
type Config struct {
	State string
	Tape  *Tape
}

// Executor applies instructions to a configuration.
// Guard bodies run on an explicit work-list instead of the Go call stack.
type Executor struct {
	maxNesting int
}

// NewExecutor creates an executor. A non-positive maxNesting uses DefaultMaxNesting.
func NewExecutor(maxNesting int) *Executor {
	if maxNesting <= 0 {
		maxNesting = DefaultMaxNesting
	}
	return &Executor{maxNesting: maxNesting}
}

type frame struct {
	entries []domain.Entry
	next    int
}

// Execute walks the entries of inst in order. Guards compare against the tape as
// left by the earlier entries of the same instruction. Tape bounds are re-checked
// after every entry.
func (x *Executor) Execute(cfg *Config, inst domain.Instruction) error {
	stack := []frame{{entries: inst.Entries}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next >= len(top.entries) {
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				// the guard entry that opened this frame is now complete
				cfg.Tape.EnsureBounds()
			}
			continue
		}

		e := top.entries[top.next]
		top.next++

		switch e.Kind {
		case domain.EntryMove:
			cfg.Tape.Move(e.Direction)
			if e.NextState != "" {
				cfg.State = e.NextState
			}
		case domain.EntryWrite:
			if e.Symbol != "" {
				if !domain.IsSymbol(e.Symbol) {
					return fmt.Errorf("%w: %q", domain.ErrInvalidSymbol, e.Symbol)
				}
				cfg.Tape.Write(e.Symbol)
			}
		case domain.EntryGuard:
			if e.Then != nil && cfg.Tape.Read() == e.Symbol {
				if len(stack)-1 >= x.maxNesting {
					return fmt.Errorf("%w: more than %d levels", domain.ErrNestingTooDeep, x.maxNesting)
				}
				stack = append(stack, frame{entries: e.Then.Entries})
				continue
			}
		default:
			return fmt.Errorf("%w: unknown entry kind %d", domain.ErrInvalidInstruction, e.Kind)
		}

		cfg.Tape.EnsureBounds()
	}

	return nil
}
