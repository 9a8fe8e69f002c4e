package columns

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned for malformed configuration tables.
var ErrInvalidConfig = errors.New("invalid column configuration")

// EntryKind distinguishes the two forms a configuration entry can take.
type EntryKind int

const (
	// EntryCoercion is an atomic coercion tag such as "date" or "numeric".
	EntryCoercion EntryKind = iota
	// EntryDescriptor combines a coercion tag with rendering options.
	EntryDescriptor
)

// Render formats understood by DefaultRenderer.
const (
	FormatPlain   = "plain"
	FormatDecimal = "decimal"
	FormatPercent = "percent"
	FormatDate    = "date"
	FormatUpper   = "upper"
	FormatLower   = "lower"
)

// RenderSpec describes how cell values of a column are displayed.
type RenderSpec struct {
	Format    string `yaml:"format" json:"format,omitempty"`
	Precision int32  `yaml:"precision" json:"precision,omitempty"`
	Layout    string `yaml:"layout" json:"layout,omitempty"`
}

// ConfigEntry is one row of a configuration table: either a bare coercion
// tag or a descriptor carrying a tag and a RenderSpec.
type ConfigEntry struct {
	kind     EntryKind
	coercion Key
	render   RenderSpec
}

// CoercionTag returns an atomic entry for tag. The tag is normalized.
func CoercionTag(tag string) ConfigEntry {
	return ConfigEntry{kind: EntryCoercion, coercion: NormalizeString(tag)}
}

// Descriptor returns a descriptor entry. The coercion tag is normalized.
func Descriptor(coercion string, render RenderSpec) ConfigEntry {
	return ConfigEntry{kind: EntryDescriptor, coercion: NormalizeString(coercion), render: render}
}

// Kind reports which variant the entry holds.
func (e ConfigEntry) Kind() EntryKind { return e.kind }

// Coercion returns the entry's coercion tag in key form.
func (e ConfigEntry) Coercion() Key { return e.coercion }

// Render returns the rendering options of a descriptor.
// Atomic entries report false.
func (e ConfigEntry) Render() (RenderSpec, bool) {
	if e.kind != EntryDescriptor {
		return RenderSpec{}, false
	}
	return e.render, true
}

// UnmarshalYAML decodes a scalar as a coercion tag and a mapping as a
// descriptor:
//
//	amount:
//	  type: numeric
//	  render: {format: decimal, precision: 2}
func (e *ConfigEntry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*e = CoercionTag(node.Value)
		return nil

	case yaml.MappingNode:
		var d struct {
			Type     string     `yaml:"type"`
			Coercion string     `yaml:"coercion"`
			Render   RenderSpec `yaml:"render"`
		}
		if err := node.Decode(&d); err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrInvalidConfig, node.Line, err)
		}
		tag := d.Type
		if tag == "" {
			tag = d.Coercion
		}
		*e = Descriptor(tag, d.Render)
		return nil

	default:
		return fmt.Errorf("%w: line %d: expected tag or mapping", ErrInvalidConfig, node.Line)
	}
}

// ConfigTable maps column keys to their configuration entries.
// Build one with NewConfigTable or LoadConfigTable so keys are normalized.
type ConfigTable map[Key]ConfigEntry

// NewConfigTable normalizes a raw configuration mapping. Values may be a
// string tag, a ConfigEntry, or a record (map[string]any) with "type" or
// "coercion" and an optional "render" record. Blank keys are dropped.
func NewConfigTable(raw map[string]any) (ConfigTable, error) {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	table := make(ConfigTable, len(raw))
	sources := make(map[Key]string, len(raw))

	for _, name := range names {
		key := NormalizeString(name)
		if key.IsBlank() {
			continue
		}
		if prev, dup := sources[key]; dup {
			return nil, fmt.Errorf("%w: %q and %q both normalize to %q", ErrInvalidConfig, prev, name, key)
		}

		entry, err := entryFromValue(raw[name])
		if err != nil {
			return nil, fmt.Errorf("%w: column %q: %v", ErrInvalidConfig, name, err)
		}

		table[key] = entry
		sources[key] = name
	}

	return table, nil
}

// LoadConfigTable reads a YAML mapping of header names to entries.
func LoadConfigTable(r io.Reader) (ConfigTable, error) {
	var raw map[string]ConfigEntry
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return ConfigTable{}, nil
		}
		if errors.Is(err, ErrInvalidConfig) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	values := make(map[string]any, len(raw))
	for name, entry := range raw {
		values[name] = entry
	}
	return NewConfigTable(values)
}

// Lookup returns the entry for key. A missing entry is not an error.
func (t ConfigTable) Lookup(key Key) (ConfigEntry, bool) {
	if key.IsBlank() {
		return ConfigEntry{}, false
	}
	entry, ok := t[key]
	return entry, ok
}

func entryFromValue(v any) (ConfigEntry, error) {
	switch val := v.(type) {
	case ConfigEntry:
		return val, nil
	case string:
		return CoercionTag(val), nil
	case Key:
		return CoercionTag(string(val)), nil
	case map[string]any:
		return descriptorFromRecord(val)
	default:
		return ConfigEntry{}, fmt.Errorf("unsupported entry type %T", v)
	}
}

func descriptorFromRecord(rec map[string]any) (ConfigEntry, error) {
	tag, _ := rec["type"].(string)
	if tag == "" {
		tag, _ = rec["coercion"].(string)
	}

	var spec RenderSpec
	switch r := rec["render"].(type) {
	case nil:
	case RenderSpec:
		spec = r
	case string:
		spec.Format = r
	case map[string]any:
		spec.Format, _ = r["format"].(string)
		spec.Layout, _ = r["layout"].(string)
		if p, ok := r["precision"]; ok {
			n, err := cast.ToInt32E(p)
			if err != nil {
				return ConfigEntry{}, fmt.Errorf("render precision: %w", err)
			}
			spec.Precision = n
		}
	default:
		return ConfigEntry{}, fmt.Errorf("unsupported render type %T", r)
	}

	return Descriptor(tag, spec), nil
}

// With returns a new table holding t's entries overlaid by other's.
// Neither input is modified.
func (t ConfigTable) With(other ConfigTable) ConfigTable {
	merged := make(ConfigTable, len(t)+len(other))
	for k, v := range t {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}
