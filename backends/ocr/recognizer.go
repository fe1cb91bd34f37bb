//go:build ocr

package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/tsawler/tally/model"
)

// Recognizer wraps a Tesseract client. It is not safe for concurrent use;
// create one recognizer per pipeline.
type Recognizer struct {
	client *gosseract.Client
}

// NewRecognizer creates a recognizer for the given language ("por",
// "por+eng"). An empty language falls back to Tesseract's default.
func NewRecognizer(language string) (*Recognizer, error) {
	client := gosseract.NewClient()
	if language != "" {
		if err := client.SetLanguage(strings.Split(language, "+")...); err != nil {
			client.Close()
			return nil, fmt.Errorf("set language %q: %w", language, err)
		}
	}
	return &Recognizer{client: client}, nil
}

// Close releases the Tesseract client.
func (r *Recognizer) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// Words recognizes an image and returns one token per word, with bounding
// boxes in image pixels (top-left origin) and confidence scaled to 0-1.
func (r *Recognizer) Words(imageData []byte) ([]model.Token, error) {
	if err := r.client.SetImageFromBytes(imageData); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}

	boxes, err := r.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("recognize: %w", err)
	}

	tokens := make([]model.Token, 0, len(boxes))
	for _, box := range boxes {
		word := strings.TrimSpace(box.Word)
		if word == "" {
			continue
		}
		tokens = append(tokens, model.Token{
			Text: word,
			BBox: model.NewBBoxFromCorners(
				float64(box.Box.Min.X), float64(box.Box.Min.Y),
				float64(box.Box.Max.X), float64(box.Box.Max.Y),
			),
			Confidence: box.Confidence / 100,
		})
	}
	return tokens, nil
}
