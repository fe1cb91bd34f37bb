// Package pdftext extracts line items from a PDF's native text layer.
//
// It reads positioned text runs with ledongthuc/pdf, splits them into word
// tokens and hands the tokens to the shared extraction engine for grid
// reconstruction. It is the cheapest backend in the cascade: when the
// document is a scan with no usable text layer it fails fast so the
// orchestrator can move on to OCR.
package pdftext
