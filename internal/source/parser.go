// Package source reads the legacy consultancy workbooks into a dataset.
package source

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// rowParser reads typed cells from one row and keeps the first failure.
type rowParser struct {
	s   *sheet
	row []string
	n   int // 1-based spreadsheet row
	err *RowError
}

func (s *sheet) parser(i int) *rowParser {
	// +2: one for the header, one for 1-based numbering.
	return &rowParser{s: s, row: s.rows[i], n: i + 2}
}

func (p *rowParser) fail(column, reason string) {
	if p.err == nil {
		p.err = &RowError{Sheet: p.s.name, Row: p.n, Column: column, Reason: reason}
	}
}

func (p *rowParser) str(column string) string {
	return p.s.cell(p.row, column)
}

func (p *rowParser) id(column string) int64 {
	raw := p.str(column)
	if raw == "" {
		p.fail(column, "missing id")
		return 0
	}
	// Integer ids saved from a float column come back as "12.0".
	raw = strings.TrimSuffix(raw, ".0")
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		p.fail(column, "invalid id "+strconv.Quote(raw))
		return 0
	}
	return v
}

// optID is id for columns that may be empty.
func (p *rowParser) optID(column string) int64 {
	if p.str(column) == "" {
		return 0
	}
	return p.id(column)
}

func (p *rowParser) dec(column string) decimal.Decimal {
	raw := p.str(column)
	if raw == "" {
		return decimal.Zero
	}
	v, err := ParseAmount(raw)
	if err != nil {
		p.fail(column, "invalid number "+strconv.Quote(raw))
		return decimal.Zero
	}
	// Raw cells carry binary float noise such as 0.20000000000000001.
	return v.Round(cellPlaces)
}

// cellPlaces is the precision kept from numeric cells.
const cellPlaces = 10

func (p *rowParser) int(column string) int {
	v := p.dec(column)
	return int(v.IntPart())
}

func (p *rowParser) flag(column string, def bool) bool {
	switch strings.ToLower(p.str(column)) {
	case "":
		return def
	case "sí", "si", "s", "yes", "true", "1", "activo":
		return true
	default:
		return false
	}
}

var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01-02-06",
	"02/01/2006",
	"2/1/2006",
	time.RFC3339,
}

// date parses Excel date serials and common text renderings; unparsable
// dates are zero.
func (p *rowParser) date(column string) time.Time {
	raw := p.str(column)
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t
		}
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ParseAmount parses a money or percentage cell. It accepts a trailing € or
// %, thousands separators and a decimal comma. A lone dot is read as a
// decimal point ("1.234" is 1.234) unless the value carries a € sign and
// every group after a dot has three digits, as in "1.234 €" or
// "12.500.000€", which are read as thousands.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	euro := strings.HasSuffix(s, "€")
	s = strings.TrimSuffix(s, "€")
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00a0", "")

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")
	switch {
	case hasComma && hasDot:
		// Whichever comes last is the decimal separator.
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	case hasDot && euro && thousandsGrouped(s):
		s = strings.ReplaceAll(s, ".", "")
	}
	return decimal.NewFromString(s)
}

// thousandsGrouped reports whether every dot in s is followed by exactly
// three digits, with a non-empty leading group.
func thousandsGrouped(s string) bool {
	groups := strings.Split(strings.TrimPrefix(s, "-"), ".")
	if groups[0] == "" {
		return false
	}
	for _, g := range groups[1:] {
		if len(g) != 3 {
			return false
		}
		for _, r := range g {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}
