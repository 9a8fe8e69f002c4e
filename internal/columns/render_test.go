package columns

import (
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

func TestStringify(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "nil", value: nil, want: ""},
		{name: "string", value: "abc", want: "abc"},
		{name: "int", value: 42, want: "42"},
		{name: "float", value: 1.5, want: "1.5"},
		{name: "bool", value: true, want: "true"},
		{name: "valid text", value: pgtype.Text{String: "x", Valid: true}, want: "x"},
		{name: "invalid text", value: pgtype.Text{}, want: ""},
		{name: "numeric", value: ToPgNumeric("1,000.50"), want: "1000.5"},
		{name: "invalid numeric", value: pgtype.Numeric{}, want: ""},
		{name: "date", value: ToPgDate("2024-02-29"), want: "2024-02-29"},
		{name: "int8", value: pgtype.Int8{Int64: -3, Valid: true}, want: "-3"},
		{name: "decimal", value: decimal.RequireFromString("2.50"), want: "2.5"},
		{name: "time", value: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), want: "2024-01-02T03:04:05Z"},
		{name: "struct falls back to fmt", value: struct{ A int }{7}, want: "{7}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Stringify(tt.value); got != tt.want {
				t.Errorf("Stringify(%#v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestDefaultRenderer_RenderSpec(t *testing.T) {
	config := ConfigTable{
		"amount": Descriptor("numeric", RenderSpec{Format: FormatDecimal, Precision: 2}),
		"rate":   Descriptor("numeric", RenderSpec{Format: FormatPercent, Precision: 1}),
		"joined": Descriptor("date", RenderSpec{Format: FormatDate, Layout: "Jan 2, 2006"}),
		"born":   Descriptor("date", RenderSpec{Format: FormatDate}),
		"code":   Descriptor("text", RenderSpec{Format: FormatUpper}),
		"email":  Descriptor("text", RenderSpec{Format: FormatLower}),
		"plain":  CoercionTag("numeric"),
	}
	cols := New([]string{"Amount", "Rate", "Joined", "Born", "Code", "Email", "Plain"}, config)

	tests := []struct {
		label string
		value any
		want  string
	}{
		{label: "amount", value: ToPgNumeric("1234.5"), want: "1234.50"},
		{label: "amount", value: "$7", want: "7.00"},
		{label: "amount", value: 3, want: "3.00"},
		{label: "amount", value: "n/a", want: "n/a"},
		{label: "rate", value: 0.125, want: "12.5%"},
		{label: "joined", value: ToPgDate("2024-03-05"), want: "Mar 5, 2024"},
		{label: "joined", value: "3/5/2024", want: "Mar 5, 2024"},
		{label: "born", value: time.Date(1990, 7, 1, 0, 0, 0, 0, time.UTC), want: "1990-07-01"},
		{label: "code", value: "ab-12", want: "AB-12"},
		{label: "email", value: "Ada@Example.COM", want: "ada@example.com"},
		{label: "plain", value: ToPgNumeric("1234.5"), want: "1234.5"},
	}

	for _, tt := range tests {
		t.Run(tt.label+"/"+tt.want, func(t *testing.T) {
			col, ok := cols.Get(tt.label)
			if !ok {
				t.Fatalf("Get(%q) missing", tt.label)
			}
			if got := col.Render(tt.value); got != tt.want {
				t.Errorf("Render(%#v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestRendererChain(t *testing.T) {
	cols := New([]string{"Name", "Zip"}, nil)

	if cols.Renderer("name") != DefaultRenderer {
		t.Fatal("Renderer() without overrides should be DefaultRenderer")
	}

	fallback := RendererFunc(func(_ *Column, v any) string { return "fallback:" + Stringify(v) })
	cols.SetRenderer(fallback)

	override := RendererFunc(func(c *Column, v any) string { return strings.ToUpper(Stringify(v)) })
	cols.Renderers()["name"] = override

	name, _ := cols.Get("Name")
	zip, _ := cols.Get("zip")

	if got := name.Render("ada"); got != "ADA" {
		t.Errorf("name.Render() = %q, want override output", got)
	}
	if got := zip.Render(12345); got != "fallback:12345" {
		t.Errorf("zip.Render() = %q, want fallback output", got)
	}
	if got := cols.Renderer("Missing Column").Render(nil, "x"); got != "fallback:x" {
		t.Errorf("Renderer(missing) = %q, want fallback output", got)
	}

	cols.SetRenderer(nil)
	if got := zip.Render(12345); got != "12345" {
		t.Errorf("zip.Render() after clearing fallback = %q, want default output", got)
	}
	if cols.FallbackRenderer() != nil {
		t.Error("FallbackRenderer() should be nil after SetRenderer(nil)")
	}

	cols.Renderers()["name"] = nil
	if got := name.Render("ada"); got != "ada" {
		t.Errorf("name.Render() with nil override = %q, want default output", got)
	}
}

func TestRenderers_LazyAndShared(t *testing.T) {
	cols := New(nil, nil)
	first := cols.Renderers()
	first["a"] = DefaultRenderer
	if _, ok := cols.Renderers()["a"]; !ok {
		t.Error("Renderers() did not return the same table on second call")
	}
}

func TestSetOverride(t *testing.T) {
	cols := New([]string{"Postal Code", "Amount"}, nil)
	upper := RendererFunc(func(_ *Column, v any) string { return strings.ToUpper(Stringify(v)) })

	cols.SetOverride("Postal-Code", upper)
	if _, ok := cols.Renderers()["postal_code"]; !ok {
		t.Fatal("SetOverride() did not store the override under the normalized key")
	}

	postal, _ := cols.Get("postal code")
	if got := postal.Render("sw1a"); got != "SW1A" {
		t.Errorf("postal.Render() = %q, want override output", got)
	}
	amount, _ := cols.Get("amount")
	if got := amount.Render("sw1a"); got != "sw1a" {
		t.Errorf("amount.Render() = %q, want default output", got)
	}

	cols.SetOverride("   ", upper)
	if len(cols.Renderers()) != 1 {
		t.Errorf("blank label added an override: %v", cols.Renderers())
	}

	cols.SetOverride("POSTAL CODE", nil)
	if got := postal.Render("sw1a"); got != "sw1a" {
		t.Errorf("postal.Render() after removal = %q, want default output", got)
	}
}
