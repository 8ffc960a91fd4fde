package cli

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/theirongolddev/horeca/internal/model"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00 €"},
		{"9.5", "9.50 €"},
		{"1234.567", "1,234.57 €"},
		{"1234567", "1,234,567.00 €"},
		{"-1500.25", "-1,500.25 €"},
		{"100", "100.00 €"},
	}
	for _, tt := range tests {
		if got := FormatMoney(d(tt.in)); got != tt.want {
			t.Fatalf("FormatMoney(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPct(t *testing.T) {
	if got := FormatPct(d("79.2222")); got != "79.2%" {
		t.Fatalf("FormatPct = %q, want 79.2%%", got)
	}
	if got := FormatSignedPct(d("17.647")); got != "+17.6%" {
		t.Fatalf("FormatSignedPct = %q, want +17.6%%", got)
	}
	if got := FormatSignedPct(d("-3.25")); got != "-3.3%" {
		t.Fatalf("FormatSignedPct = %q, want -3.3%%", got)
	}
	if got := FormatSignedPct(d("0")); got != "0.0%" {
		t.Fatalf("FormatSignedPct(0) = %q, want 0.0%%", got)
	}
}

func TestFormatQty(t *testing.T) {
	if got := FormatQty(d("0.250"), "Kg"); got != "0.25 Kg" {
		t.Fatalf("FormatQty = %q, want \"0.25 Kg\"", got)
	}
	if got := FormatNumber(1234567); got != "1,234,567" {
		t.Fatalf("FormatNumber = %q, want 1,234,567", got)
	}
}

func TestMarginColor(t *testing.T) {
	floor := d("20")
	tests := []struct {
		pct  string
		want string
	}{
		{"10", string(ColorRed)},
		{"19.99", string(ColorRed)},
		{"20", string(ColorOrange)},
		{"29.9", string(ColorOrange)},
		{"30", string(ColorGreen)},
	}
	for _, tt := range tests {
		if got := string(MarginColor(d(tt.pct), floor)); got != tt.want {
			t.Fatalf("MarginColor(%s) = %s, want %s", tt.pct, got, tt.want)
		}
	}
	if ClassColor(model.Perro) != ColorRed {
		t.Fatalf("ClassColor(Perro) = %s, want red", ClassColor(model.Perro))
	}
}

func TestRenderTable_AlignsMultibyteCells(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Plato", "Precio"},
		Rows: [][]string{
			{"Tortilla", FormatMoney(d("9"))},
			{"---"},
			{"Caña", FormatMoney(d("2"))},
		},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("RenderTable lines = %d, want 7", len(lines))
	}
	w := 0
	for i, l := range lines {
		lw := len([]rune(stripANSI(l)))
		if i == 0 {
			w = lw
			continue
		}
		if lw != w {
			t.Fatalf("line %d width = %d, want %d: %q", i, lw, w, l)
		}
	}
}

// stripANSI removes SGR escape sequences.
func stripANSI(s string) string {
	var b strings.Builder
	in := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			in = true
		case in && r == 'm':
			in = false
		case !in:
			b.WriteRune(r)
		}
	}
	return b.String()
}
