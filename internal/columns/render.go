package columns

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// DefaultDateLayout is used by FormatDate when a RenderSpec has no layout.
const DefaultDateLayout = "2006-01-02"

// Renderer turns a cell value of a column into display text.
type Renderer interface {
	Render(col *Column, value any) string
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(col *Column, value any) string

// Render calls f(col, value).
func (f RendererFunc) Render(col *Column, value any) string {
	return f(col, value)
}

// DefaultRenderer stringifies values and applies the column's RenderSpec,
// if its configuration entry is a descriptor.
var DefaultRenderer Renderer = defaultRenderer{}

type defaultRenderer struct{}

func (defaultRenderer) Render(col *Column, value any) string {
	var spec RenderSpec
	if col != nil {
		spec, _ = col.RenderSpec()
	}

	switch strings.ToLower(spec.Format) {
	case FormatDecimal:
		if d, ok := toDecimal(value); ok {
			return d.StringFixed(spec.Precision)
		}
	case FormatPercent:
		if d, ok := toDecimal(value); ok {
			return d.Mul(decimal.NewFromInt(100)).StringFixed(spec.Precision) + "%"
		}
	case FormatDate:
		if t, ok := toTime(value); ok {
			layout := spec.Layout
			if layout == "" {
				layout = DefaultDateLayout
			}
			return t.Format(layout)
		}
	case FormatUpper:
		return strings.ToUpper(Stringify(value))
	case FormatLower:
		return strings.ToLower(Stringify(value))
	}

	return Stringify(value)
}

// Stringify returns the plain text form of a cell value.
// Nil and invalid pgtype values render as an empty string.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case pgtype.Text:
		if !v.Valid {
			return ""
		}
		return v.String
	case pgtype.Bool:
		if !v.Valid {
			return ""
		}
		return strconv.FormatBool(v.Bool)
	case pgtype.Int8:
		if !v.Valid {
			return ""
		}
		return strconv.FormatInt(v.Int64, 10)
	case pgtype.UUID:
		if !v.Valid {
			return ""
		}
		return uuid.UUID(v.Bytes).String()
	case pgtype.Numeric:
		if d, ok := numericToDecimal(v); ok {
			return d.String()
		}
		return ""
	case pgtype.Date:
		if !v.Valid || v.InfinityModifier != pgtype.Finite {
			return ""
		}
		return v.Time.Format(DefaultDateLayout)
	case time.Time:
		return v.Format(time.RFC3339)
	}

	s, err := cast.ToStringE(value)
	if err != nil {
		return fmt.Sprint(value)
	}
	return s
}

func numericToDecimal(n pgtype.Numeric) (decimal.Decimal, bool) {
	if !n.Valid || n.NaN || n.InfinityModifier != pgtype.Finite || n.Int == nil {
		return decimal.Decimal{}, false
	}
	return decimal.NewFromBigInt(n.Int, n.Exp), true
}

func toDecimal(value any) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case pgtype.Numeric:
		return numericToDecimal(v)
	case pgtype.Int8:
		return decimal.NewFromInt(v.Int64), v.Valid
	case decimal.Decimal:
		return v, true
	case float64:
		return decimal.NewFromFloat(v), true
	case float32:
		return decimal.NewFromFloat32(v), true
	}

	s, err := cast.ToStringE(value)
	if err != nil {
		return decimal.Decimal{}, false
	}
	s, ok := cleanNumber(s)
	if !ok {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

func toTime(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case pgtype.Date:
		return v.Time, v.Valid && v.InfinityModifier == pgtype.Finite
	case string:
		d := ToPgDate(v)
		return d.Time, d.Valid
	}
	return time.Time{}, false
}
