package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/p2lu/turingtoy/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Extensions recognized as machine definitions, in lookup order.
var Extensions = []string{".yaml", ".yml", ".json"}

// Loader implements ports.MachineLoader over a directory of YAML or JSON definitions.
type Loader struct {
	BasePath string
}

// NewLoader creates a Loader rooted at basePath.
// If basePath is empty, it defaults to the current directory.
func NewLoader(basePath string) *Loader {
	if basePath == "" {
		basePath = "."
	}
	return &Loader{BasePath: basePath}
}

// Load resolves name as <BasePath>/<name>, trying each known extension when name has none.
func (l *Loader) Load(ctx context.Context, name string) (*domain.Machine, error) {
	if name == "" {
		return nil, fmt.Errorf("machine name cannot be empty")
	}

	candidates := []string{filepath.Join(l.BasePath, name)}
	if filepath.Ext(name) == "" {
		for _, ext := range Extensions {
			candidates = append(candidates, filepath.Join(l.BasePath, name+ext))
		}
	}

	for _, path := range candidates {
		m, err := LoadMachine(path)
		if errors.Is(err, domain.ErrMachineNotFound) {
			continue
		}
		return m, err
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrMachineNotFound, name)
}

// List returns the names (without extension) of the definitions in BasePath.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(l.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list machines: %w", err)
	}

	seen := make(map[string]bool)
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !isDefinition(entry.Name()) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func isDefinition(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, known := range Extensions {
		if ext == known {
			return true
		}
	}
	return false
}

// LoadMachine reads and validates a single definition file.
// JSON is parsed by the YAML decoder, which keeps the key order of compound instructions.
func LoadMachine(path string) (*domain.Machine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrMachineNotFound, path)
		}
		return nil, fmt.Errorf("failed to read machine file: %w", err)
	}

	m, err := ParseMachine(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ParseMachine decodes and validates a YAML or JSON definition.
func ParseMachine(data []byte) (*domain.Machine, error) {
	var m domain.Machine
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse machine: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}
