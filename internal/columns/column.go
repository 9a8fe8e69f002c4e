package columns

// Column is one header entry: its label as supplied, its canonical key and
// the configuration entry resolved for that key. Columns are immutable once
// built; a collection only ever adds or removes them.
type Column struct {
	label    string
	key      Key
	entry    ConfigEntry
	hasEntry bool
	columns  *Columns
}

func newColumn(owner *Columns, label string, config ConfigTable) *Column {
	col := &Column{
		label:   label,
		key:     NormalizeString(label),
		columns: owner,
	}
	col.entry, col.hasEntry = config.Lookup(col.key)
	return col
}

// Label returns the header text as supplied.
func (c *Column) Label() string { return c.label }

// Key returns the normalized lookup key. It may be blank.
func (c *Column) Key() Key { return c.key }

// Config returns the configuration entry for the column's key, if any.
func (c *Column) Config() (ConfigEntry, bool) {
	return c.entry, c.hasEntry
}

// Coercion returns the column's coercion tag, or a blank key when the
// column has no configuration.
func (c *Column) Coercion() Key {
	if !c.hasEntry {
		return ""
	}
	return c.entry.Coercion()
}

// RenderSpec returns the rendering options of a descriptor entry.
func (c *Column) RenderSpec() (RenderSpec, bool) {
	if !c.hasEntry {
		return RenderSpec{}, false
	}
	return c.entry.Render()
}

// Coerce converts raw cell text using the column's coercion tag.
// Columns without a known tag return the cleaned text.
func (c *Column) Coerce(raw string) any {
	if fn, ok := Coercion(c.Coercion()); ok {
		return fn(CleanCell(raw))
	}
	return CleanCell(raw)
}

// Render formats value with the renderer active for this column.
func (c *Column) Render(value any) string {
	if c.columns == nil {
		return DefaultRenderer.Render(c, value)
	}
	return c.columns.rendererFor(c.key).Render(c, value)
}

// SpaceDelimited returns the column's header text.
func (c *Column) SpaceDelimited() string { return c.label }

// TabDelimited returns the column's header text.
func (c *Column) TabDelimited() string { return c.label }

func (c *Column) String() string { return c.label }
