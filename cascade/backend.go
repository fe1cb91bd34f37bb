package cascade

import (
	"context"

	"github.com/tsawler/tally/model"
)

// Document is the unit of processing handed to every backend in one run.
type Document struct {
	// Path is the source file on disk. Backends that cannot handle the
	// file type should return an error from Extract; the cascade moves on.
	Path string

	// Pages optionally restricts processing to the given 1-based pages.
	// Empty means all pages.
	Pages []int

	// Language is the recognition/extraction language hint ("por", "eng").
	Language string
}

// WantsPage reports whether the page selection includes the 1-based page.
func (d *Document) WantsPage(page int) bool {
	if len(d.Pages) == 0 {
		return true
	}
	for _, p := range d.Pages {
		if p == page {
			return true
		}
	}
	return false
}

// Backend is one extraction strategy. Implementations wrap external
// collaborators (text layers, OCR engines, model APIs) and convert their
// output into a scored attempt, usually through the shared [Engine].
//
// Extract must honor ctx between pages: rasterizing and recognizing are the
// slow parts, and cancellation is checked cooperatively at those
// boundaries. A backend that cannot process the document at all returns an
// error; partial results come back as a low-confidence attempt instead.
type Backend interface {
	Name() string
	Extract(ctx context.Context, doc *Document) (*model.Attempt, error)
}
