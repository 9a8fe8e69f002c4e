package web

import (
	"github.com/JonMunkholm/tabular/internal/columns"
	"github.com/JonMunkholm/tabular/internal/web/templates"
	"github.com/a-h/templ"
)

// columnsPage renders the HTML preview of a header.
func columnsPage(cols *columns.Columns) templ.Component {
	return templates.ColumnsPage(cols.SpaceDelimited(), columnRows(cols))
}

// columnRows flattens a header for the preview table. Blank keys show as
// "(blank)" and duplicates that lost the index are marked shadowed.
func columnRows(cols *columns.Columns) []templates.ColumnRow {
	descs := cols.Describe()
	rows := make([]templates.ColumnRow, len(descs))
	for i, d := range descs {
		key := string(d.Key)
		switch {
		case d.Blank:
			key = "(blank)"
		case !d.Indexed:
			key += " (shadowed)"
		}
		rows[i] = templates.ColumnRow{
			Position: d.Position,
			Label:    d.Label,
			Key:      key,
			Coercion: string(d.Coercion),
		}
	}
	return rows
}
