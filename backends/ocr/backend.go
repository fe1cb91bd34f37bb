package ocr

import (
	"context"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/tsawler/tally/cascade"
	"github.com/tsawler/tally/model"
)

// Config holds the OCR backend settings.
type Config struct {
	// MinWordConfidence drops recognized words below this 0-1 confidence
	// before grid reconstruction. Low-confidence fragments mostly come
	// from table rules and stamps and only pollute the clustering.
	MinWordConfidence float64
}

// DefaultConfig returns the default OCR backend configuration.
func DefaultConfig() Config {
	return Config{MinWordConfidence: 0.4}
}

// Backend recognizes scanned pages and reconstructs the item table from
// the word boxes.
type Backend struct {
	engine *cascade.Engine
	config Config
}

// New creates an OCR backend over the shared extraction engine.
func New(engine *cascade.Engine) *Backend {
	if engine == nil {
		engine = cascade.NewEngine()
	}
	return &Backend{engine: engine, config: DefaultConfig()}
}

// Configure sets the backend configuration.
func (b *Backend) Configure(config Config) {
	b.config = config
}

// Name identifies the backend in cascade configuration and audit entries.
func (b *Backend) Name() string {
	return "ocr"
}

// Extract recognizes every selected page and reconstructs the item table.
// Cancellation is checked before each page is rasterized and recognized.
// Without Tesseract support compiled in it fails immediately with
// ErrNotEnabled.
func (b *Backend) Extract(ctx context.Context, doc *cascade.Document) (*model.Attempt, error) {
	recognizer, err := NewRecognizer(doc.Language)
	if err != nil {
		return nil, err
	}
	defer recognizer.Close()

	count, err := api.PageCountFile(doc.Path)
	if err != nil {
		return nil, fmt.Errorf("page count: %w", err)
	}

	pages := make(map[int][]model.Token)
	for p := 1; p <= count; p++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !doc.WantsPage(p) {
			continue
		}
		tokens, err := b.recognizePage(recognizer, doc.Path, p)
		if err != nil {
			// A page without an image or with a broken one is skipped;
			// other pages may still carry the table.
			continue
		}
		if len(tokens) > 0 {
			pages[p] = tokens
		}
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("no recognizable page images in %s", doc.Path)
	}
	return b.engine.ExtractTokens(pages, model.SourceTokens, b.Name()), nil
}

func (b *Backend) recognizePage(recognizer *Recognizer, path string, page int) ([]model.Token, error) {
	images, err := pageImages(path, page)
	if err != nil {
		return nil, err
	}

	var tokens []model.Token
	for _, raw := range images {
		prepared, err := Prepare(raw)
		if err != nil {
			continue
		}
		words, err := recognizer.Words(prepared)
		if err != nil {
			return nil, err
		}
		for _, w := range words {
			if w.Confidence >= b.config.MinWordConfidence {
				tokens = append(tokens, w)
			}
		}
	}
	return tokens, nil
}
