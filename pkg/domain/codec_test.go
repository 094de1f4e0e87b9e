package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestInstruction_UnmarshalYAML(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want Instruction
	}{
		{
			name: "bare move",
			src:  `R`,
			want: NewInstruction(MoveEntry(Right, "")),
		},
		{
			name: "mapping keeps document order",
			src:  `{write: "1", R: done}`,
			want: NewInstruction(WriteEntry("1"), MoveEntry(Right, DoneState)),
		},
		{
			name: "reversed mapping keeps reversed order",
			src:  `{R: done, write: "1"}`,
			want: NewInstruction(MoveEntry(Right, DoneState), WriteEntry("1")),
		},
		{
			name: "null values",
			src:  `{L: null, write: ~}`,
			want: NewInstruction(MoveEntry(Left, ""), WriteEntry("")),
		},
		{
			name: "guard with nested compound",
			src:  `{R: null, "0": {write: "1", L: back}}`,
			want: NewInstruction(
				MoveEntry(Right, ""),
				GuardEntry("0", NewInstruction(WriteEntry("1"), MoveEntry(Left, "back"))),
			),
		},
		{
			name: "guard with bare move body",
			src:  `{"1": R}`,
			want: NewInstruction(GuardEntry("1", NewInstruction(MoveEntry(Right, "")))),
		},
		{
			name: "sequence allows repeated keys",
			src:  `[R, {R: done}]`,
			want: NewInstruction(MoveEntry(Right, ""), MoveEntry(Right, DoneState)),
		},
		{
			name: "integer scalars are symbols",
			src:  `{write: 1}`,
			want: NewInstruction(WriteEntry("1")),
		},
		{
			name: "null is empty",
			src:  `null`,
			want: Instruction{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Instruction
			require.NoError(t, yaml.Unmarshal([]byte(tt.src), &got))
			if tt.want.IsEmpty() {
				assert.True(t, got.IsEmpty())
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInstruction_UnmarshalYAML_Errors(t *testing.T) {
	for _, src := range []string{`X`, `{R: [a, b]}`, `{write: {a: b}}`, `{"0": Q}`} {
		var got Instruction
		err := yaml.Unmarshal([]byte(src), &got)
		assert.ErrorIs(t, err, ErrInvalidInstruction, "source %s", src)
	}
}

func TestInstruction_WriteMustBeOneSymbol(t *testing.T) {
	for _, src := range []string{`{write: ab}`, `{write: 10, R: done}`, `{"0": {write: "xy"}}`} {
		var got Instruction
		err := yaml.Unmarshal([]byte(src), &got)
		assert.ErrorIs(t, err, ErrInvalidSymbol, "source %s", src)
		assert.ErrorIs(t, err, ErrInvalidInstruction, "source %s", src)
	}

	var got Instruction
	require.NoError(t, yaml.Unmarshal([]byte(`{write: "□"}`), &got))
	assert.Equal(t, NewInstruction(WriteEntry("□")), got)

	_, err := InstructionFromValue(map[string]any{"write": 10})
	assert.ErrorIs(t, err, ErrInvalidSymbol)
}

func TestInstruction_JSON(t *testing.T) {
	t.Run("Decode keeps key order", func(t *testing.T) {
		var got Instruction
		require.NoError(t, json.Unmarshal([]byte(`{"R":"done","write":"1"}`), &got))
		assert.Equal(t, NewInstruction(MoveEntry(Right, DoneState), WriteEntry("1")), got)
	})

	t.Run("Encode shapes", func(t *testing.T) {
		tests := []struct {
			in   Instruction
			want string
		}{
			{NewInstruction(MoveEntry(Left, "")), `"L"`},
			{NewInstruction(WriteEntry("1"), MoveEntry(Right, DoneState)), `{"write":"1","R":"done"}`},
			{NewInstruction(MoveEntry(Right, ""), MoveEntry(Right, "")), `[{"R":null},{"R":null}]`},
			{NewInstruction(GuardEntry("0", NewInstruction(MoveEntry(Left, "")))), `{"0":"L"}`},
			{Instruction{}, `{}`},
		}
		for _, tt := range tests {
			b, err := json.Marshal(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(b))
		}
	})

	t.Run("Inside a table", func(t *testing.T) {
		var m Machine
		src := `{"table":{"s":{"1":"R","_":{"write":"1","R":"done"}}},"blank":"_","start state":"s"}`
		require.NoError(t, json.Unmarshal([]byte(src), &m))
		require.NoError(t, m.Validate())
		assert.Equal(t, NewInstruction(WriteEntry("1"), MoveEntry(Right, DoneState)), m.Table["s"]["_"])
	})

	t.Run("Reserved guard cannot be encoded", func(t *testing.T) {
		_, err := json.Marshal(NewInstruction(GuardEntry("L", NewInstruction(MoveEntry(Right, "")))))
		assert.ErrorIs(t, err, ErrReservedSymbol)
	})
}

func TestInstruction_YAMLRoundTrip(t *testing.T) {
	in := NewInstruction(
		WriteEntry("x"),
		GuardEntry("x", NewInstruction(MoveEntry(Left, ""), MoveEntry(Left, "back"))),
		MoveEntry(Right, ""),
	)
	out, err := yaml.Marshal(in)
	require.NoError(t, err)

	var got Instruction
	require.NoError(t, yaml.Unmarshal(out, &got))
	assert.Equal(t, in, got)
}

func TestInstructionFromValue(t *testing.T) {
	got, err := InstructionFromValue([]any{
		map[string]any{"write": "1"},
		map[string]any{"0": "R"},
		"L",
	})
	require.NoError(t, err)
	assert.Equal(t, NewInstruction(
		WriteEntry("1"),
		GuardEntry("0", NewInstruction(MoveEntry(Right, ""))),
		MoveEntry(Left, ""),
	), got)

	_, err = InstructionFromValue(map[string]any{"write": "1", "R": "done"})
	assert.ErrorIs(t, err, ErrUnorderedCompound)

	_, err = InstructionFromValue(map[string]any{"R": []any{"x"}})
	assert.ErrorIs(t, err, ErrInvalidInstruction)

	got, err = InstructionFromValue(map[string]any{"write": 1})
	require.NoError(t, err)
	assert.Equal(t, NewInstruction(WriteEntry("1")), got)

	got, err = InstructionFromValue(map[string]string{"R": "done"})
	require.NoError(t, err)
	assert.Equal(t, NewInstruction(MoveEntry(Right, DoneState)), got)
}

func TestInstruction_StringAndNextStates(t *testing.T) {
	in := NewInstruction(
		WriteEntry("1"),
		GuardEntry("1", NewInstruction(MoveEntry(Left, "a"))),
		MoveEntry(Right, "b"),
		MoveEntry(Right, "a"),
	)
	assert.Equal(t, "{write: 1, 1: {L: a}, R: b, R: a}", in.String())
	assert.Equal(t, []string{"a", "b"}, in.NextStates())
	assert.Equal(t, "R", NewInstruction(MoveEntry(Right, "")).String())
}
