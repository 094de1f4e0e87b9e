package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/p2lu/turingtoy/pkg/adapters/file"
	"github.com/p2lu/turingtoy/pkg/domain"
	contract "github.com/p2lu/turingtoy/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLoader_Contract(t *testing.T) {
	loader := file.NewLoader("testdata")

	contract.MachineLoaderContractTest(t, loader, map[string]string{
		"increment": "s",
		"guarded":   "s",
	})
}

func TestLoadMachine_YAML(t *testing.T) {
	m, err := file.LoadMachine(filepath.Join("testdata", "increment.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "_", m.Blank)
	assert.Equal(t, "s", m.StartState)
	assert.Equal(t, domain.NewInstruction(domain.MoveEntry(domain.Right, "")), m.Table["s"]["1"])
	assert.Equal(t,
		domain.NewInstruction(domain.WriteEntry("1"), domain.MoveEntry(domain.Right, domain.DoneState)),
		m.Table["s"]["_"],
	)
}

func TestLoadMachine_JSONKeepsOrder(t *testing.T) {
	m, err := file.NewLoader("testdata").Load(context.Background(), "guarded.json")
	require.NoError(t, err)

	want := domain.NewInstruction(
		domain.WriteEntry("1"),
		domain.GuardEntry("1", domain.NewInstruction(domain.MoveEntry(domain.Right, domain.DoneState))),
		domain.MoveEntry(domain.Left, ""),
	)
	assert.Equal(t, want, m.Table["s"]["0"])

	// sequences allow repeated keys
	want = domain.NewInstruction(
		domain.WriteEntry("x"),
		domain.WriteEntry("y"),
		domain.MoveEntry(domain.Right, domain.DoneState),
	)
	assert.Equal(t, want, m.Table["s"]["_"])
}

func TestLoadMachine_Errors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0644))
		return path
	}

	tests := []struct {
		name string
		path string
		want error
	}{
		{"missing file", filepath.Join(dir, "nope.yaml"), domain.ErrMachineNotFound},
		{"no table", write("a.yaml", "blank: _\nstart state: s\n"), domain.ErrMissingTable},
		{"no start", write("b.yaml", "table: {}\nblank: _\n"), domain.ErrMissingStartState},
		{"wide blank", write("c.yaml", "table: {}\nblank: ab\nstart state: s\n"), domain.ErrInvalidBlank},
		{"bad tag", write("d.yaml", "table: {s: {a: X}}\nblank: _\nstart state: s\n"), domain.ErrInvalidInstruction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := file.LoadMachine(tt.path)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseMachine_NumericSymbols(t *testing.T) {
	m, err := file.ParseMachine([]byte("table:\n  s:\n    1: {write: 0, R: done}\nblank: 0\nstart state: s\n"))
	require.NoError(t, err)

	assert.Equal(t, "0", m.Blank)
	assert.Equal(t,
		domain.NewInstruction(domain.WriteEntry("0"), domain.MoveEntry(domain.Right, domain.DoneState)),
		m.Table["s"]["1"],
	)
}
