package columns

// coerce.go turns raw cell text into typed values according to a column's
// coercion tag. Results are pgtype values with Valid=false for empty or
// unparseable input, so callers can hand them straight to pgx.

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// CoerceFunc converts raw cell text into a typed value.
type CoerceFunc func(raw string) any

// numericRegex validates a number after currency and separator cleanup.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// TwoDigitYearPivot defines how 2-digit years are interpreted.
// Years more than this many years in the future fall back a century.
var TwoDigitYearPivot = 20

var (
	twoDigitYearLayouts = []string{
		"1/2/06", "01/02/06", "1-2-06", "1.2.06", "01.02.06",
	}
	fourDigitYearLayouts = []string{
		"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006", "1.2.2006", "01.02.2006",
		"2006-01-02", "2006/01/02", "2006.01.02",
		"Jan 2, 2006", "2 Jan 2006",
		"20060102",
	}
)

var coercions = map[Key]CoerceFunc{
	"text":    func(s string) any { return ToPgText(s) },
	"string":  func(s string) any { return ToPgText(s) },
	"date":    func(s string) any { return ToPgDate(s) },
	"numeric": func(s string) any { return ToPgNumeric(s) },
	"decimal": func(s string) any { return ToPgNumeric(s) },
	"money":   func(s string) any { return ToPgNumeric(s) },
	"integer": func(s string) any { return ToPgInt8(s) },
	"int":     func(s string) any { return ToPgInt8(s) },
	"bool":    func(s string) any { return ToPgBool(s) },
	"boolean": func(s string) any { return ToPgBool(s) },
	"uuid":    func(s string) any { return ToPgUUID(s) },
}

// Coercion returns the converter registered for tag.
func Coercion(tag Key) (CoerceFunc, bool) {
	fn, ok := coercions[tag]
	return fn, ok
}

// CleanCell removes common spreadsheet artifacts from a cell value:
// surrounding whitespace, an Excel formula prefix (="...") and quotes.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.Trim(s, `"'`)
}

// ToPgText converts a string to pgtype.Text.
// Returns invalid if the string is empty or only whitespace.
func ToPgText(s string) pgtype.Text {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

// ToPgDate converts a string to pgtype.Date.
// Supports multiple date formats and handles 2-digit years with pivot.
func ToPgDate(s string) pgtype.Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Date{Valid: false}
	}

	for _, layout := range fourDigitYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return pgtype.Date{Time: t, Valid: true}
		}
	}

	pivotYear := time.Now().Year() + TwoDigitYearPivot
	for _, layout := range twoDigitYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			if t.Year() > pivotYear {
				t = t.AddDate(-100, 0, 0)
			}
			return pgtype.Date{Time: t, Valid: true}
		}
	}

	return pgtype.Date{Valid: false}
}

// ToPgNumeric converts a string to pgtype.Numeric.
// Handles currency symbols, thousands separators and accounting negatives "(12.50)".
func ToPgNumeric(s string) pgtype.Numeric {
	s, ok := cleanNumber(s)
	if !ok {
		return pgtype.Numeric{Valid: false}
	}

	var n pgtype.Numeric
	if err := n.Scan(s); err != nil {
		return pgtype.Numeric{Valid: false}
	}
	return n
}

// ToPgInt8 converts a string to pgtype.Int8.
// Values with a fractional part are invalid.
func ToPgInt8(s string) pgtype.Int8 {
	s, ok := cleanNumber(s)
	if !ok {
		return pgtype.Int8{Valid: false}
	}
	i, err := strconv.ParseInt(strings.TrimPrefix(s, "+"), 10, 64)
	if err != nil {
		return pgtype.Int8{Valid: false}
	}
	return pgtype.Int8{Int64: i, Valid: true}
}

// ToPgBool converts a string to pgtype.Bool.
// Accepts true/false, yes/no, t/f, y/n, 1/0.
func ToPgBool(s string) pgtype.Bool {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "true", "t", "yes", "y", "1":
		return pgtype.Bool{Bool: true, Valid: true}
	case "false", "f", "no", "n", "0":
		return pgtype.Bool{Bool: false, Valid: true}
	default:
		return pgtype.Bool{Valid: false}
	}
}

// ToPgUUID converts a string to pgtype.UUID.
// Returns invalid if the string is empty or not a valid UUID.
func ToPgUUID(s string) pgtype.UUID {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.UUID{Valid: false}
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return pgtype.UUID{Valid: false}
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}
}

// cleanNumber strips currency symbols and separators and validates the result.
func cleanNumber(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.NewReplacer("$", "", "€", "", "£", "", ",", "").Replace(s)
	s = strings.TrimSpace(s)

	if negative {
		s = "-" + s
	}

	if !numericRegex.MatchString(s) {
		return "", false
	}
	return s, true
}
