package utils

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// CurrencyGlyphs are stripped from numeric cells before conversion. Stored
// amounts were produced with exactly this set; do not extend it silently.
var CurrencyGlyphs = []string{"฿", "$", "€", "£"}

// CellParser converts spreadsheet cells to numbers without ever failing.
// Non-empty cells that cannot be parsed become zero and are counted so a
// caller can report how many values were coerced.
type CellParser struct {
	coerced int
}

// NewCellParser returns a parser with a zero coercion count.
func NewCellParser() *CellParser {
	return &CellParser{}
}

// Coerced returns how many non-empty cells were coerced to zero.
func (p *CellParser) Coerced() int {
	return p.coerced
}

// Amount parses a money cell.
func (p *CellParser) Amount(raw string) decimal.Decimal {
	d, ok := ParseAmount(raw)
	if !ok {
		p.coerced++
		return decimal.Zero
	}
	return d
}

// Quantity parses a count cell; fractional values are truncated.
func (p *CellParser) Quantity(raw string) int {
	return int(p.Amount(raw).IntPart())
}

// ParseAmount parses a numeric cell. ok is false only for a non-empty cell that
// is not a number after cleaning; an empty cell parses as zero.
func ParseAmount(raw string) (decimal.Decimal, bool) {
	s := CleanNumeric(raw)
	if s == "" {
		return decimal.Zero, true
	}
	negative := false
	// Accounting notation: (1,234.00)
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if negative {
		d = d.Neg()
	}
	return d, true
}

// CleanNumeric strips surrounding quotes, thousands separators, whitespace and
// currency glyphs from a cell.
func CleanNumeric(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, `"'`)
	for _, g := range CurrencyGlyphs {
		s = strings.ReplaceAll(s, g, "")
	}
	s = strings.ReplaceAll(s, ",", "")
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
