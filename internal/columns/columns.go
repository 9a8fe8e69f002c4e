package columns

import (
	"fmt"
	"iter"
	"strings"
)

// Header line separators.
const (
	SpaceSeparator = "   "
	TabSeparator   = "\t"
)

// Columns is the ordered, keyed header of one table.
//
// The ordered slice is the source of truth; indexes (key -> position) and
// byKey (key -> Column) are derived from it and only hold non-blank keys.
// When a header repeats a key, only the first occurrence is indexed.
//
// A Columns value is not safe for concurrent use.
type Columns struct {
	config    ConfigTable
	columns   []*Column
	indexes   map[Key]int
	byKey     map[Key]*Column
	renderer  Renderer
	renderers map[Key]Renderer
}

// New builds a header from labels. config may be nil.
func New(labels []string, config ConfigTable) *Columns {
	c := &Columns{
		config:  config,
		columns: make([]*Column, 0, len(labels)),
		indexes: make(map[Key]int, len(labels)),
		byKey:   make(map[Key]*Column, len(labels)),
	}
	for _, label := range labels {
		col := newColumn(c, label, c.config)
		if !col.key.IsBlank() {
			if _, seen := c.byKey[col.key]; !seen {
				c.indexes[col.key] = len(c.columns)
				c.byKey[col.key] = col
			}
		}
		c.columns = append(c.columns, col)
	}
	return c
}

// NewFromLabels builds a header from labels of any text-like type.
// A nil label becomes an anonymous, blank-keyed column.
func NewFromLabels(labels []any, config ConfigTable) (*Columns, error) {
	names := make([]string, len(labels))
	for i, label := range labels {
		s, err := LabelString(label)
		if err != nil {
			return nil, fmt.Errorf("header %d: %w", i, err)
		}
		names[i] = s
	}
	return New(names, config), nil
}

// NewFromMapping builds a header whose labels are the mapping's names, in
// entry order. Values are ignored here; callers keep them via the entries.
func NewFromMapping(entries []MappingEntry, config ConfigTable) (*Columns, error) {
	labels := make([]any, len(entries))
	for i, e := range entries {
		labels[i] = e.Name
	}
	return NewFromLabels(labels, config)
}

// HasKey reports whether some column's key equals the normalized label.
// Blank keys are never found.
func (c *Columns) HasKey(label string) bool {
	key := NormalizeString(label)
	if key.IsBlank() {
		return false
	}
	for _, col := range c.columns {
		if col.key == key {
			return true
		}
	}
	return false
}

// Get returns the column for label.
func (c *Columns) Get(label string) (*Column, bool) {
	col, ok := c.byKey[NormalizeString(label)]
	return col, ok
}

// Index returns the zero-based position of the column for label.
func (c *Columns) Index(label string) (int, bool) {
	i, ok := c.indexes[NormalizeString(label)]
	return i, ok
}

// At returns the column at position i. Blank-keyed columns are only
// reachable this way.
func (c *Columns) At(i int) (*Column, bool) {
	if i < 0 || i >= len(c.columns) {
		return nil, false
	}
	return c.columns[i], true
}

// Len returns the number of columns, blank-keyed ones included.
func (c *Columns) Len() int {
	return len(c.columns)
}

// All yields columns in positional order.
func (c *Columns) All() iter.Seq[*Column] {
	return func(yield func(*Column) bool) {
		for _, col := range c.columns {
			if !yield(col) {
				return
			}
		}
	}
}

// Keys returns every column's key in positional order, blank ones included.
func (c *Columns) Keys() []Key {
	keys := make([]Key, len(c.columns))
	for i, col := range c.columns {
		keys[i] = col.key
	}
	return keys
}

// Labels returns every column's label in positional order.
func (c *Columns) Labels() []string {
	labels := make([]string, len(c.columns))
	for i, col := range c.columns {
		labels[i] = col.label
	}
	return labels
}

// Append adds a column for label at the end of the header. Labels whose
// key is blank or already present are ignored.
func (c *Columns) Append(label string) {
	col := newColumn(c, label, c.config)
	if col.key.IsBlank() || c.HasKey(label) {
		return
	}
	c.indexes[col.key] = len(c.columns)
	c.byKey[col.key] = col
	c.columns = append(c.columns, col)
}

// Delete removes every column whose key equals the normalized label and
// renumbers the remaining positions. Unknown or blank labels are ignored.
func (c *Columns) Delete(label string) {
	key := NormalizeString(label)
	if key.IsBlank() {
		return
	}

	kept := c.columns[:0]
	for _, col := range c.columns {
		if col.key != key {
			kept = append(kept, col)
		}
	}
	for i := len(kept); i < len(c.columns); i++ {
		c.columns[i] = nil
	}
	c.columns = kept

	delete(c.byKey, key)
	delete(c.indexes, key)

	for i, col := range c.columns {
		if c.byKey[col.key] == col {
			c.indexes[col.key] = i
		}
	}
}

// SetRenderer sets the header-wide fallback renderer. Nil clears it.
func (c *Columns) SetRenderer(r Renderer) {
	c.renderer = r
}

// FallbackRenderer returns the header-wide renderer, if set.
func (c *Columns) FallbackRenderer() Renderer {
	return c.renderer
}

// Renderers returns the per-key override table. Entries are looked up by
// normalized key, so assign with NormalizeString(label) or use SetOverride.
func (c *Columns) Renderers() map[Key]Renderer {
	if c.renderers == nil {
		c.renderers = make(map[Key]Renderer)
	}
	return c.renderers
}

// SetOverride installs r as the renderer for label's key. A nil r removes
// the override. Blank labels are ignored.
func (c *Columns) SetOverride(label string, r Renderer) {
	key := NormalizeString(label)
	if key.IsBlank() {
		return
	}
	if r == nil {
		delete(c.renderers, key)
		return
	}
	c.Renderers()[key] = r
}

// Renderer returns the renderer active for label: its override, else the
// fallback renderer, else DefaultRenderer.
func (c *Columns) Renderer(label string) Renderer {
	return c.rendererFor(NormalizeString(label))
}

type rendererLookup func(key Key) (Renderer, bool)

func (c *Columns) rendererFor(key Key) Renderer {
	chain := []rendererLookup{
		func(k Key) (Renderer, bool) {
			r, ok := c.renderers[k]
			return r, ok && r != nil
		},
		func(Key) (Renderer, bool) {
			return c.renderer, c.renderer != nil
		},
		func(Key) (Renderer, bool) {
			return DefaultRenderer, true
		},
	}
	for _, lookup := range chain {
		if r, ok := lookup(key); ok {
			return r
		}
	}
	return DefaultRenderer
}

// SpaceDelimited joins the header texts with three spaces.
func (c *Columns) SpaceDelimited() string {
	parts := make([]string, len(c.columns))
	for i, col := range c.columns {
		parts[i] = col.SpaceDelimited()
	}
	return strings.Join(parts, SpaceSeparator)
}

// TabDelimited joins the header texts with a tab.
func (c *Columns) TabDelimited() string {
	parts := make([]string, len(c.columns))
	for i, col := range c.columns {
		parts[i] = col.TabDelimited()
	}
	return strings.Join(parts, TabSeparator)
}

// Description is a read-only snapshot of one column.
type Description struct {
	Position int    `json:"position"`
	Label    string `json:"label"`
	Key      Key    `json:"key"`
	Blank    bool   `json:"blank"`
	Indexed  bool   `json:"indexed"`
	Coercion Key    `json:"coercion,omitempty"`
}

// Describe returns a snapshot of every column in positional order.
func (c *Columns) Describe() []Description {
	out := make([]Description, len(c.columns))
	for i, col := range c.columns {
		out[i] = Description{
			Position: i,
			Label:    col.label,
			Key:      col.key,
			Blank:    col.key.IsBlank(),
			Indexed:  !col.key.IsBlank() && c.byKey[col.key] == col,
			Coercion: col.Coercion(),
		}
	}
	return out
}
