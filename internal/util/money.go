package util

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// ParseMoney parses a monetary cell value from a POS export, tolerating the
// decorations these exports put around amounts: "$" and "¥" currency marks,
// the "NT" prefix, thousands commas and any whitespace. It returns the
// parsed amount and whether parsing succeeded.
//
// The stripping is character-based ('N' and 'T' are dropped wherever they
// appear), matching the tolerance of the exports this was built against.
func ParseMoney(s string) (decimal.Decimal, bool) {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '$', ',', '¥', 'N', 'T':
			continue
		}
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}

	cleaned := b.String()
	if cleaned == "" {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
