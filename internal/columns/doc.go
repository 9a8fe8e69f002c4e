// Package columns models the header of a table: an ordered collection of
// columns, each identified by a normalized key.
//
// # Keys
//
// Header labels are reduced to a canonical [Key] by [NormalizeString]:
// lowercase, every run of characters outside [a-z0-9_] replaced by a single
// underscore, leading and trailing underscores removed. "First Name",
// "first-name" and "first_name" all map to "first_name". A label that
// normalizes to nothing has a blank key; such columns keep their position
// but are never found by key.
//
// # Configuration
//
// A [ConfigTable] maps keys to either a coercion tag or a descriptor that
// also carries a [RenderSpec]:
//
//	table, err := columns.NewConfigTable(map[string]any{
//	    "Postal Code": "text",
//	    "Amount":      map[string]any{"type": "numeric", "render": map[string]any{"format": "decimal", "precision": 2}},
//	})
//
// # Collections
//
// [Columns] keeps the positional order plus two indexes (key -> position,
// key -> column). [Columns.Append] ignores blank and duplicate keys;
// [Columns.Delete] renumbers the remaining positions.
//
//	cols := columns.New([]string{"First Name", "", "Amount"}, table)
//	cols.Index("first_name")   // 0, true
//	cols.Get("amount")         // *Column, true
//	cols.SpaceDelimited()      // "First Name      Amount"
//
// Renderers resolve per key: an override from [Columns.Renderers], then the
// fallback set with [Columns.SetRenderer], then [DefaultRenderer].
package columns
