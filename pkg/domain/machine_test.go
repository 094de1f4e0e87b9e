package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Lookup(t *testing.T) {
	right := NewInstruction(MoveEntry(Right, ""))
	finish := NewInstruction(WriteEntry("1"), MoveEntry(Right, DoneState))
	table := Table{
		"s":         {"1": right, "_": finish},
		"only-zero": {"0": right},
		"empty":     {"x": Instruction{}},
	}

	tests := []struct {
		name   string
		state  string
		symbol string
		want   Instruction
		found  bool
	}{
		{"exact symbol", "s", "1", right, true},
		{"blank symbol", "s", "_", finish, true},
		{"unlisted symbol falls back to blank", "s", "x", finish, true},
		{"no fallback available", "only-zero", "1", Instruction{}, false},
		{"unknown state", "missing", "1", Instruction{}, false},
		{"exact empty entry wins over fallback", "empty", "x", Instruction{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := table.Lookup(tt.state, tt.symbol, "_")
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTable_BlankEntryIsCatchAll(t *testing.T) {
	catchAll := NewInstruction(MoveEntry(Left, "back"))
	table := Table{"s": {"_": catchAll}}

	for _, sym := range []string{"a", "b", "0", "1", "L", "write", "_"} {
		got, ok := table.Lookup("s", sym, "_")
		require.True(t, ok, "symbol %q", sym)
		assert.Equal(t, catchAll, got, "symbol %q", sym)
	}
}

func TestTable_SortedKeys(t *testing.T) {
	table := Table{"b": {"1": {}, "0": {}}, "a": {}}
	assert.Equal(t, []string{"a", "b"}, table.States())
	assert.Equal(t, []string{"0", "1"}, table["b"].Symbols())
}

func TestMachine_Validate(t *testing.T) {
	table := Table{"s": {}}

	tests := []struct {
		name    string
		machine *Machine
		wantErr error
	}{
		{"valid", &Machine{Table: table, Blank: "_", StartState: "s"}, nil},
		{"empty table is allowed", &Machine{Table: Table{}, Blank: "_", StartState: "s"}, nil},
		{"multibyte blank", &Machine{Table: table, Blank: "□", StartState: "s"}, nil},
		{"nil machine", nil, ErrMissingTable},
		{"missing table", &Machine{Blank: "_", StartState: "s"}, ErrMissingTable},
		{"missing start state", &Machine{Table: table, Blank: "_"}, ErrMissingStartState},
		{"missing blank", &Machine{Table: table, StartState: "s"}, ErrInvalidBlank},
		{"long blank", &Machine{Table: table, Blank: "__", StartState: "s"}, ErrInvalidBlank},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.machine.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestResult_Snapshot(t *testing.T) {
	r := &Result{Tape: "1", History: []HistoryEntry{{State: "s"}}}
	cp := r.Snapshot()
	cp.History[0].State = "changed"
	assert.Equal(t, "s", r.History[0].State)

	var nilResult *Result
	assert.Nil(t, nilResult.Snapshot())
}
