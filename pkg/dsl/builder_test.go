package dsl

import (
	"errors"
	"reflect"
	"testing"

	"github.com/p2lu/turingtoy/pkg/domain"
)

func TestBuilder_UnaryIncrement(t *testing.T) {
	b := New("_").Start("s")

	b.State("s").
		On("1", Right()).
		Otherwise(Write("1").Right(domain.DoneState))

	m, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	if m.StartState != "s" || m.Blank != "_" {
		t.Errorf("Unexpected header: start=%q blank=%q", m.StartState, m.Blank)
	}

	want := domain.NewInstruction(domain.WriteEntry("1"), domain.MoveEntry(domain.Right, domain.DoneState))
	if got := m.Table["s"]["_"]; !reflect.DeepEqual(got, want) {
		t.Errorf("Blank entry = %v, want %v", got, want)
	}
	if got := m.Table["s"]["1"]; !reflect.DeepEqual(got, domain.NewInstruction(domain.MoveEntry(domain.Right, ""))) {
		t.Errorf("Entry for 1 = %v, want R", got)
	}
}

func TestBuilder_GuardsAndStates(t *testing.T) {
	b := New("_").Start("a")

	b.State("a").
		On("0", Write("1").If("1", Left("b"))).
		State("b").
		On("L", If("L", Right(domain.DoneState)))

	m, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	if len(m.Table) != 2 {
		t.Fatalf("Expected 2 states, got %d", len(m.Table))
	}

	guard := m.Table["a"]["0"].Entries[1]
	if guard.Kind != domain.EntryGuard || guard.Symbol != "1" {
		t.Errorf("Expected guard on 1, got %+v", guard)
	}
	if guard.Then.Entries[0].NextState != "b" {
		t.Errorf("Expected guard body to switch to b, got %+v", guard.Then.Entries[0])
	}

	// guards on reserved tags are allowed in Go
	reserved := m.Table["b"]["L"].Entries[0]
	if reserved.Symbol != "L" {
		t.Errorf("Expected guard on L, got %q", reserved.Symbol)
	}
}

func TestBuilder_InstructionsAreIndependent(t *testing.T) {
	base := Right()
	b := New("_").Start("s")
	b.State("s").On("1", base)
	base.Write("x")

	m, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if n := len(m.Table["s"]["1"].Entries); n != 1 {
		t.Errorf("Expected the stored instruction to keep 1 entry, got %d", n)
	}
}

func TestBuilder_Validation(t *testing.T) {
	_, err := New("_").Build()
	if !errors.Is(err, domain.ErrMissingStartState) {
		t.Errorf("Expected ErrMissingStartState, got %v", err)
	}

	_, err = New("").Start("s").Build()
	if !errors.Is(err, domain.ErrInvalidBlank) {
		t.Errorf("Expected ErrInvalidBlank, got %v", err)
	}
}
