package model

import "strings"

// unitSynonyms maps folded spellings to the canonical unit token. The
// vocabulary is closed: anything outside it is not a unit.
var unitSynonyms = map[string]string{
	"UN":    "UN",
	"UND":   "UN",
	"UNID":  "UN",
	"U":     "UN",
	"PC":    "PC", // folded spelling of "pç" as well
	"PCA":   "PC",
	"M":     "M",
	"ML":    "M", // "metro linear"
	"M2":    "M2",
	"M²":    "M2",
	"M3":    "M3",
	"M³":    "M3",
	"KG":    "KG",
	"G":     "G",
	"T":     "T",
	"TON":   "T",
	"L":     "L",
	"LT":    "L",
	"CJ":    "CJ",
	"CONJ":  "CJ",
	"JG":    "JG",
	"VB":    "VB",
	"VERBA": "VB",
	"GL":    "GL",
	"GLB":   "GL",
	"H":     "H",
	"HR":    "H",
	"HORA":  "H",
	"DIA":   "DIA",
	"MES":   "MES",
	"KM":    "KM",
	"SC":    "SC",
	"SACO":  "SC",
	"PAR":   "PAR",
	"PT":    "PT",
	"RL":    "RL",
	"KIT":   "KIT",
	"CX":    "CX",
}

// NormalizeUnit normalizes a raw cell to the canonical unit token, folding
// accents and case and dropping trailing punctuation ("Unid." -> "UN",
// "m²" -> "M2"). Returns "" when the text is not in the unit vocabulary.
func NormalizeUnit(s string) string {
	f := Fold(s)
	f = strings.TrimRight(f, ".:;")
	if canon, ok := unitSynonyms[f]; ok {
		return canon
	}
	// Superscript digits survive folding; retry with them flattened.
	f = strings.NewReplacer("²", "2", "³", "3").Replace(f)
	if canon, ok := unitSynonyms[f]; ok {
		return canon
	}
	return ""
}

// IsUnit reports whether the text normalizes to a known unit token.
func IsUnit(s string) bool {
	return NormalizeUnit(s) != ""
}
