package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Definition format:
//
//	"1": R                       # bare move
//	"_": {write: "1", R: done}   # ordered mapping
//	"0": [R, {R: done}]          # ordered sequence, allows repeated keys
//
// L, R and write are reserved keys; any other key is a guard symbol.

// UnmarshalYAML implements yaml.Unmarshaler. Mapping order is preserved.
func (i *Instruction) UnmarshalYAML(node *yaml.Node) error {
	inst, err := decodeNode(node)
	if err != nil {
		return err
	}
	*i = inst
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (i Instruction) MarshalYAML() (any, error) {
	return encodeNode(i)
}

// UnmarshalJSON decodes JSON through yaml.v3 so that object key order survives.
func (i *Instruction) UnmarshalJSON(data []byte) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInstruction, err)
	}
	node := &doc
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			*i = Instruction{}
			return nil
		}
		node = doc.Content[0]
	}
	return i.UnmarshalYAML(node)
}

// MarshalJSON encodes the instruction with ordered object keys.
func (i Instruction) MarshalJSON() ([]byte, error) {
	node, err := encodeNode(i)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := writeJSON(&buf, node); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeNode(n *yaml.Node) (Instruction, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return decodeNode(n.Alias)
	case yaml.ScalarNode:
		if isNull(n) || n.Value == "" {
			return Instruction{}, nil
		}
		dir, ok := ParseDirection(n.Value)
		if !ok {
			return Instruction{}, fmt.Errorf("%w: %q is not a move tag (line %d)", ErrInvalidInstruction, n.Value, n.Line)
		}
		return NewInstruction(MoveEntry(dir, "")), nil
	case yaml.MappingNode:
		var entries []Entry
		for k := 0; k+1 < len(n.Content); k += 2 {
			e, err := decodePair(n.Content[k], n.Content[k+1])
			if err != nil {
				return Instruction{}, err
			}
			entries = append(entries, e)
		}
		return Instruction{Entries: entries}, nil
	case yaml.SequenceNode:
		var entries []Entry
		for _, item := range n.Content {
			sub, err := decodeNode(item)
			if err != nil {
				return Instruction{}, err
			}
			entries = append(entries, sub.Entries...)
		}
		return Instruction{Entries: entries}, nil
	default:
		return Instruction{}, fmt.Errorf("%w: unexpected node kind %d (line %d)", ErrInvalidInstruction, n.Kind, n.Line)
	}
}

func decodePair(key, value *yaml.Node) (Entry, error) {
	if key.Kind != yaml.ScalarNode {
		return Entry{}, fmt.Errorf("%w: non-scalar key (line %d)", ErrInvalidInstruction, key.Line)
	}
	switch key.Value {
	case TagLeft, TagRight:
		next, err := scalarValue(key.Value, value)
		if err != nil {
			return Entry{}, err
		}
		dir, _ := ParseDirection(key.Value)
		return MoveEntry(dir, next), nil
	case TagWrite:
		sym, err := scalarValue(key.Value, value)
		if err != nil {
			return Entry{}, err
		}
		if sym != "" && !IsSymbol(sym) {
			return Entry{}, fmt.Errorf("%w: %w: %q (line %d)", ErrInvalidInstruction, ErrInvalidSymbol, sym, value.Line)
		}
		return WriteEntry(sym), nil
	default:
		then, err := decodeNode(value)
		if err != nil {
			return Entry{}, fmt.Errorf("guard %q: %w", key.Value, err)
		}
		return GuardEntry(key.Value, then), nil
	}
}

func scalarValue(key string, n *yaml.Node) (string, error) {
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("%w: %s expects a scalar (line %d)", ErrInvalidInstruction, key, n.Line)
	}
	if isNull(n) {
		return "", nil
	}
	return n.Value, nil
}

func isNull(n *yaml.Node) bool {
	return n.ShortTag() == "!!null"
}

func encodeNode(i Instruction) (*yaml.Node, error) {
	if len(i.Entries) == 1 && i.Entries[0].Kind == EntryMove && i.Entries[0].NextState == "" {
		return strNode(i.Entries[0].Direction.Tag()), nil
	}

	keys := make([]*yaml.Node, 0, len(i.Entries))
	values := make([]*yaml.Node, 0, len(i.Entries))
	unique := true
	seen := make(map[string]bool)
	for _, e := range i.Entries {
		var key, value *yaml.Node
		switch e.Kind {
		case EntryMove:
			key = strNode(e.Direction.Tag())
			value = optNode(e.NextState)
		case EntryWrite:
			key = strNode(TagWrite)
			value = optNode(e.Symbol)
		case EntryGuard:
			if IsReservedTag(e.Symbol) {
				return nil, fmt.Errorf("%w: %q", ErrReservedSymbol, e.Symbol)
			}
			key = strNode(e.Symbol)
			then := Instruction{}
			if e.Then != nil {
				then = *e.Then
			}
			var err error
			if value, err = encodeNode(then); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("%w: unknown entry kind %d", ErrInvalidInstruction, e.Kind)
		}
		if seen[key.Value] {
			unique = false
		}
		seen[key.Value] = true
		keys = append(keys, key)
		values = append(values, value)
	}

	if unique {
		m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for k := range keys {
			m.Content = append(m.Content, keys[k], values[k])
		}
		return m, nil
	}

	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for k := range keys {
		seq.Content = append(seq.Content, &yaml.Node{
			Kind:    yaml.MappingNode,
			Tag:     "!!map",
			Content: []*yaml.Node{keys[k], values[k]},
		})
	}
	return seq, nil
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func optNode(s string) *yaml.Node {
	if s == "" {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
	return strNode(s)
}

// writeJSON renders the node trees produced by encodeNode.
func writeJSON(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		if isNull(n) {
			buf.WriteString("null")
			return nil
		}
		b, err := json.Marshal(n.Value)
		if err != nil {
			return err
		}
		buf.Write(b)
	case yaml.MappingNode:
		buf.WriteByte('{')
		for k := 0; k+1 < len(n.Content); k += 2 {
			if k > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, n.Content[k]); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeJSON(buf, n.Content[k+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for k, item := range n.Content {
			if k > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		return fmt.Errorf("%w: cannot encode node kind %d", ErrInvalidInstruction, n.Kind)
	}
	return nil
}

// InstructionFromValue converts a loosely typed value (as produced by decoding into
// `any`) into an Instruction. Strings are move tags, slices are ordered entry lists,
// and maps must have at most one key because Go maps carry no order.
func InstructionFromValue(v any) (Instruction, error) {
	switch val := v.(type) {
	case nil:
		return Instruction{}, nil
	case Instruction:
		return val, nil
	case *Instruction:
		if val == nil {
			return Instruction{}, nil
		}
		return *val, nil
	case string:
		if val == "" {
			return Instruction{}, nil
		}
		dir, ok := ParseDirection(val)
		if !ok {
			return Instruction{}, fmt.Errorf("%w: %q is not a move tag", ErrInvalidInstruction, val)
		}
		return NewInstruction(MoveEntry(dir, "")), nil
	case map[string]any:
		if len(val) > 1 {
			return Instruction{}, fmt.Errorf("%w: %d keys", ErrUnorderedCompound, len(val))
		}
		for k, inner := range val {
			e, err := entryFromValue(k, inner)
			if err != nil {
				return Instruction{}, err
			}
			return NewInstruction(e), nil
		}
		return Instruction{}, nil
	case map[string]string:
		generic := make(map[string]any, len(val))
		for k, s := range val {
			generic[k] = s
		}
		return InstructionFromValue(generic)
	case []any:
		var entries []Entry
		for _, item := range val {
			sub, err := InstructionFromValue(item)
			if err != nil {
				return Instruction{}, err
			}
			entries = append(entries, sub.Entries...)
		}
		return Instruction{Entries: entries}, nil
	case []string:
		generic := make([]any, len(val))
		for k, s := range val {
			generic[k] = s
		}
		return InstructionFromValue(generic)
	default:
		return Instruction{}, fmt.Errorf("%w: unsupported value of type %T", ErrInvalidInstruction, v)
	}
}

func entryFromValue(key string, v any) (Entry, error) {
	switch key {
	case TagLeft, TagRight, TagWrite:
		var s string
		switch val := v.(type) {
		case nil:
		case string:
			s = val
		case int, int64, uint64, float64, bool:
			s = fmt.Sprint(val)
		default:
			return Entry{}, fmt.Errorf("%w: %s expects a string, got %T", ErrInvalidInstruction, key, v)
		}
		if key == TagWrite {
			if s != "" && !IsSymbol(s) {
				return Entry{}, fmt.Errorf("%w: %w: %q", ErrInvalidInstruction, ErrInvalidSymbol, s)
			}
			return WriteEntry(s), nil
		}
		dir, _ := ParseDirection(key)
		return MoveEntry(dir, s), nil
	default:
		then, err := InstructionFromValue(v)
		if err != nil {
			return Entry{}, fmt.Errorf("guard %q: %w", key, err)
		}
		return GuardEntry(key, then), nil
	}
}
