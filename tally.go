// Package tally recovers line-item tables from construction budget
// documents (planilhas orçamentárias) whose structure was lost to
// scanning, OCR or sloppy exports.
//
// Basic usage:
//
//	result, err := tally.Open("planilha.pdf").Extract(ctx)
//	if err != nil {
//	    // handle error
//	}
//	for _, rec := range result.Records {
//	    fmt.Println(rec.DisplayCode(), rec.Description)
//	}
//
// With options:
//
//	result, err := tally.Open("planilha.pdf").
//	    Pages(1, 2, 3).
//	    Language("por").
//	    Threshold("pdftext", 0.4).
//	    Extract(ctx)
//
// Extraction backends are tried in order until one produces an acceptable
// record set; the full attempt audit is returned alongside the winning
// records. The lower-level packages (tables, rowscan, cascade, dedupe) are
// available directly for advanced use.
package tally

import (
	"github.com/tsawler/tally/backends/htmltable"
	"github.com/tsawler/tally/backends/ocr"
	"github.com/tsawler/tally/backends/pdftext"
	"github.com/tsawler/tally/cascade"
)

// Open creates an Extractor over a document file with the default backend
// cascade: native text layer, HTML tables, then OCR.
//
// Example:
//
//	result, err := tally.Open("planilha.pdf").Extract(ctx)
func Open(filename string) *Extractor {
	engine := cascade.NewEngine()
	return &Extractor{
		filename: filename,
		backends: []cascade.Backend{
			pdftext.New(engine),
			htmltable.New(engine),
			ocr.New(engine),
		},
		options: defaultOptions(),
	}
}

// New creates an Extractor over a caller-supplied backend cascade, tried
// in argument order. Use File to point it at a document.
//
// Example:
//
//	result, err := tally.New(myBackend).File("planilha.pdf").Extract(ctx)
func New(backends ...cascade.Backend) *Extractor {
	return &Extractor{
		backends: backends,
		options:  defaultOptions(),
	}
}

// Must wraps a call returning (T, error) and panics on error. Intended for
// scripts and tests where error handling would be cumbersome.
//
// Example:
//
//	result := tally.Must(tally.Open("planilha.pdf").Extract(ctx))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
