package model

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold strips diacritics and upper-cases text. Header keywords, unit tokens
// and description comparisons all go through this so that "Descrição",
// "DESCRICAO" and "descricao" compare equal.
func Fold(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		out = s
	}
	return strings.ToUpper(strings.TrimSpace(out))
}

// NormalizeSpace collapses runs of whitespace to single spaces.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ParseQuantity parses a quantity cell. Brazilian documents write decimals
// with a comma and thousands with a dot ("1.234,56"); plain dotted decimals
// from spreadsheet sources are accepted too. Returns an invalid NullDecimal
// for anything that is not a plain numeric value.
func ParseQuantity(s string) decimal.NullDecimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}
	}
	// OCR sometimes glues the unit onto the number ("10,00UN").
	s = strings.TrimFunc(s, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '-'
	})
	if s == "" || strings.Count(s, "-") > 1 {
		return decimal.NullDecimal{}
	}

	if strings.Contains(s, ",") {
		// Comma decimal: dots are thousand separators.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
		if strings.Contains(s, ",") {
			return decimal.NullDecimal{}
		}
	} else if dots := strings.Count(s, "."); dots > 1 {
		// "1.234.567" with no comma: thousand separators only.
		s = strings.ReplaceAll(s, ".", "")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// LooksNumeric reports whether a cell is a plain numeric value in either
// decimal convention. Used by column-role inference.
func LooksNumeric(s string) bool {
	return ParseQuantity(s).Valid
}
