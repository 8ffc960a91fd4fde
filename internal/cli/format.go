// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney formats an amount in euros with thousands separators.
// e.g., 1234.5 -> "1,234.50 €"
func FormatMoney(v decimal.Decimal) string {
	return groupThousands(v.StringFixed(2)) + " €"
}

// FormatUnitPrice formats a per-unit price, e.g. "8.50 €/Kg".
func FormatUnitPrice(v decimal.Decimal, unit string) string {
	if unit == "" {
		return FormatMoney(v)
	}
	return FormatMoney(v) + "/" + unit
}

// FormatPct formats a percentage value (already scaled to 0-100) with one decimal.
func FormatPct(v decimal.Decimal) string {
	return v.StringFixed(1) + "%"
}

// FormatSignedPct formats a deviation with an explicit sign, e.g. "+12.5%".
func FormatSignedPct(v decimal.Decimal) string {
	s := v.StringFixed(1)
	if v.IsPositive() && s != "0.0" {
		s = "+" + s
	}
	return s + "%"
}

// FormatQty formats a recipe quantity without trailing zeros.
// e.g., 0.250 -> "0.25", 2 -> "2"
func FormatQty(v decimal.Decimal, unit string) string {
	s := v.String()
	if unit == "" {
		return s
	}
	return s + " " + unit
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return groupThousands(strconv.FormatInt(n, 10))
}

// groupThousands inserts commas into the integer part of a plain decimal string.
func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var result strings.Builder
	if neg {
		result.WriteByte('-')
	}
	remainder := len(intPart) % 3
	if remainder > 0 {
		result.WriteString(intPart[:remainder])
	}
	for i := remainder; i < len(intPart); i += 3 {
		if i > 0 {
			result.WriteByte(',')
		}
		result.WriteString(intPart[i : i+3])
	}
	result.WriteString(frac)
	return result.String()
}

// YesNo renders an active flag the way the legacy workbooks do.
func YesNo(b bool) string {
	if b {
		return "Sí"
	}
	return "No"
}
