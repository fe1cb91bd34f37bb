package pdftext

import (
	"context"
	"fmt"
	"strings"

	lpdf "github.com/ledongthuc/pdf"

	"github.com/tsawler/tally/cascade"
	"github.com/tsawler/tally/model"
)

// Config holds the text-layer backend settings.
type Config struct {
	// MinTokens is the minimum word count across the selected pages for
	// the text layer to be considered usable. Below it Extract returns an
	// error so the cascade escalates to OCR.
	MinTokens int
}

// DefaultConfig returns the default text-layer configuration.
func DefaultConfig() Config {
	return Config{MinTokens: 10}
}

// Backend reads the native text layer of a PDF.
type Backend struct {
	engine *cascade.Engine
	config Config
}

// New creates a text-layer backend over the shared extraction engine.
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
	return "pdftext"
}

// Extract reads word tokens from every selected page and reconstructs the
// item table from them. Cancellation is checked between pages.
func (b *Backend) Extract(ctx context.Context, doc *cascade.Document) (*model.Attempt, error) {
	closer, reader, err := lpdf.Open(doc.Path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer closer.Close()

	pages := make(map[int][]model.Token)
	total := 0
	for p := 1; p <= reader.NumPage(); p++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !doc.WantsPage(p) {
			continue
		}
		tokens, err := pageTokens(reader, p)
		if err != nil {
			// Malformed pages are skipped; the rest of the document may
			// still carry the table.
			continue
		}
		if len(tokens) > 0 {
			pages[p] = tokens
			total += len(tokens)
		}
	}

	if total < b.config.MinTokens {
		return nil, fmt.Errorf("no usable text layer: %d tokens", total)
	}
	return b.engine.ExtractTokens(pages, model.SourceTokens, b.Name()), nil
}

// pageTokens extracts one page's word tokens. The library panics on some
// malformed content streams; those pages are reported as errors.
func pageTokens(reader *lpdf.Reader, number int) (tokens []model.Token, err error) {
	defer func() {
		if r := recover(); r != nil {
			tokens = nil
			err = fmt.Errorf("page %d: %v", number, r)
		}
	}()

	page := reader.Page(number)
	if page.V.IsNull() {
		return nil, fmt.Errorf("page %d: missing", number)
	}

	height := pageHeight(page)
	for _, run := range page.Content().Text {
		tokens = append(tokens, runWords(run, height)...)
	}
	return tokens, nil
}

// pageHeight reads the MediaBox height, defaulting to A4 points.
func pageHeight(page lpdf.Page) float64 {
	box := page.V.Key("MediaBox")
	if box.Kind() == lpdf.Array && box.Len() == 4 {
		if h := box.Index(3).Float64() - box.Index(1).Float64(); h > 0 {
			return h
		}
	}
	return 842
}

// runWords splits one text run into word tokens. Run metrics only give the
// total advance, so word widths are apportioned by character count. The Y
// axis is flipped to a top-left origin so that row order follows reading
// order.
func runWords(run lpdf.Text, pageHeight float64) []model.Token {
	runes := []rune(run.S)
	if len(runes) == 0 || run.W <= 0 {
		return nil
	}
	charWidth := run.W / float64(len(runes))

	height := run.FontSize
	if height <= 0 {
		height = 10
	}
	y := pageHeight - run.Y - height

	var tokens []model.Token
	wordStart := -1
	flush := func(end int) {
		if wordStart < 0 {
			return
		}
		word := strings.TrimSpace(string(runes[wordStart:end]))
		if word != "" {
			tokens = append(tokens, model.Token{
				Text: word,
				BBox: model.NewBBox(
					run.X+charWidth*float64(wordStart),
					y,
					charWidth*float64(end-wordStart),
					height,
				),
				Confidence: 1,
			})
		}
		wordStart = -1
	}

	for i, r := range runes {
		if r == ' ' || r == '\t' {
			flush(i)
			continue
		}
		if wordStart < 0 {
			wordStart = i
		}
	}
	flush(len(runes))
	return tokens
}
