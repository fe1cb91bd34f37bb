package rowscan

import "regexp"

// Page-metadata patterns that survive structure recovery as rows: print
// timestamps, national tax ids (CNPJ), certificate numbers, pagination
// markers. Matching rows are discarded without touching the carry state.
var noisePatterns = []*regexp.Regexp{
	// CNPJ: 12.345.678/0001-90
	regexp.MustCompile(`\d{2}\.\d{3}\.\d{3}/\d{4}-?\d{2}`),
	// print timestamps: "Emitido em 01/02/2024 10:31"
	regexp.MustCompile(`(?i)(impresso|emitido|gerado)\s+em\b`),
	regexp.MustCompile(`\d{2}/\d{2}/\d{4}\s+\d{2}:\d{2}`),
	// pagination: "Página 3 de 12", "pag. 3/12", "folha 2"
	regexp.MustCompile(`(?i)\bp[aá]g(ina)?\.?\s*\d+(\s*(de|/)\s*\d+)?\b`),
	regexp.MustCompile(`(?i)\bfolha\s+\d+\b`),
	// certificate / protocol numbers: keyword plus a long digit run
	regexp.MustCompile(`(?i)(certificado|protocolo|autentica[cç][aã]o)[^\d]{0,20}\d{6,}`),
	// bare long digit runs (barcodes, validation codes)
	regexp.MustCompile(`^\s*\d{12,}\s*$`),
}

// isNoise reports whether a row's joined text is page metadata.
func isNoise(text string) bool {
	for _, p := range noisePatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}
