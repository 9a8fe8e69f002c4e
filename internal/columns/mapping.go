package columns

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

// MappingEntry is one name -> value pair of an ordered header mapping.
type MappingEntry struct {
	Name  any
	Value any
}

// SortedMapping turns a Go map into entries ordered by name, since map
// iteration order is unspecified.
func SortedMapping(m map[string]any) []MappingEntry {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]MappingEntry, len(names))
	for i, name := range names {
		entries[i] = MappingEntry{Name: name, Value: m[name]}
	}
	return entries
}

// LoadMapping reads a YAML mapping and keeps the document's key order.
func LoadMapping(r io.Reader) ([]MappingEntry, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode mapping: %w", err)
	}

	node := &doc
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: line %d: expected a mapping", ErrInvalidLabel, node.Line)
	}

	entries := make([]MappingEntry, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: line %d: header name must be a scalar", ErrInvalidLabel, keyNode.Line)
		}

		var value any
		if err := valNode.Decode(&value); err != nil {
			return nil, fmt.Errorf("decode %q: %w", keyNode.Value, err)
		}
		entries = append(entries, MappingEntry{Name: keyNode.Value, Value: value})
	}
	return entries, nil
}

// DecodeJSONMapping reads a JSON object and keeps its member order.
// Empty input and null yield no entries.
func DecodeJSONMapping(data []byte) ([]MappingEntry, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode mapping: %w", err)
	}
	if tok == nil {
		return nil, nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrInvalidLabel)
	}

	var entries []MappingEntry
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode mapping: %w", err)
		}
		name, _ := tok.(string)

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("decode %q: %w", name, err)
		}
		entries = append(entries, MappingEntry{Name: name, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decode mapping: %w", err)
	}
	return entries, nil
}
