//go:build !ocr

package ocr

import (
	"errors"

	"github.com/tsawler/tally/model"
)

// ErrNotEnabled is returned when recognition is attempted but Tesseract
// support was not compiled in. Rebuild with -tags ocr to enable it.
var ErrNotEnabled = errors.New("ocr support not enabled; rebuild with -tags ocr")

// Recognizer is the stub recognizer used without the "ocr" build tag.
type Recognizer struct{}

// NewRecognizer returns ErrNotEnabled.
func NewRecognizer(language string) (*Recognizer, error) {
	return nil, ErrNotEnabled
}

// Close is a no-op; safe on a nil recognizer.
func (r *Recognizer) Close() error {
	return nil
}

// Words returns ErrNotEnabled.
func (r *Recognizer) Words(imageData []byte) ([]model.Token, error) {
	return nil, ErrNotEnabled
}
