package dsl

import "github.com/p2lu/turingtoy/pkg/domain"

// Inst accumulates the ordered entries of an instruction.
type Inst struct {
	entries []domain.Entry
}

// Left starts an instruction with a left move.
func Left(next ...string) *Inst { return new(Inst).Left(next...) }

// Right starts an instruction with a right move.
func Right(next ...string) *Inst { return new(Inst).Right(next...) }

// Write starts an instruction with a write.
func Write(symbol string) *Inst { return new(Inst).Write(symbol) }

// If starts an instruction with a guard.
func If(symbol string, then *Inst) *Inst { return new(Inst).If(symbol, then) }

// Left appends a left move, switching to next when given.
func (i *Inst) Left(next ...string) *Inst {
	i.entries = append(i.entries, domain.MoveEntry(domain.Left, first(next)))
	return i
}

// Right appends a right move, switching to next when given.
func (i *Inst) Right(next ...string) *Inst {
	i.entries = append(i.entries, domain.MoveEntry(domain.Right, first(next)))
	return i
}

// Write appends a write of symbol.
func (i *Inst) Write(symbol string) *Inst {
	i.entries = append(i.entries, domain.WriteEntry(symbol))
	return i
}

// If appends a guard running then when the head reads symbol at that point.
func (i *Inst) If(symbol string, then *Inst) *Inst {
	i.entries = append(i.entries, domain.GuardEntry(symbol, then.Build()))
	return i
}

// Build returns the underlying domain.Instruction.
func (i *Inst) Build() domain.Instruction {
	if i == nil {
		return domain.Instruction{}
	}
	entries := make([]domain.Entry, len(i.entries))
	copy(entries, i.entries)
	return domain.Instruction{Entries: entries}
}

func first(s []string) string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}
