// Package ocr extracts line items from scanned PDFs with Tesseract.
//
// Page images are pulled out of the PDF with pdfcpu, prepared for
// recognition (grayscale, 2x upscale) and recognized word by word via
// gosseract. The word boxes feed the shared extraction engine's grid
// reconstruction, the same path the text-layer backend uses.
//
// Recognition requires Tesseract and cgo; build with the "ocr" tag to
// enable it. Without the tag the recognizer is a stub whose constructor
// returns ErrNotEnabled, which makes the backend fail cleanly inside a
// cascade.
package ocr
