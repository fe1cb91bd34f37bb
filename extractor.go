package tally

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/tsawler/tally/cascade"
	"github.com/tsawler/tally/dedupe"
	"github.com/tsawler/tally/model"
)

// Result is what a terminal Extract returns: the reconciled records of the
// winning attempt plus the full cascade audit.
type Result struct {
	// Records is the deduplicated record list, in segment order then
	// document order.
	Records []model.Record

	// Confidence is the winning attempt's composite 0-1 score.
	Confidence float64

	// Backend is the name of the backend that produced the records.
	Backend string

	// Audit lists every attempt, accepted or not.
	Audit []cascade.AuditEntry
}

// Extractor provides a fluent interface for recovering line items from a
// document. Each configuration method returns a new Extractor instance,
// making chains safe to share and reuse.
type Extractor struct {
	filename string
	backends []cascade.Backend
	options  extractOptions

	// Accumulated error (fail-fast at the terminal operation).
	err error
}

// clone creates a copy of the Extractor with deep-copied options. The
// backend set is shared; backends are stateless between documents.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		backends: e.backends,
		options:  e.options.clone(),
		err:      e.err,
	}
}

// File sets the document to process.
func (e *Extractor) File(filename string) *Extractor {
	out := e.clone()
	out.filename = filename
	return out
}

// Pages restricts processing to the given 1-based pages.
func (e *Extractor) Pages(pages ...int) *Extractor {
	out := e.clone()
	for _, p := range pages {
		if p < 1 {
			out.err = fmt.Errorf("invalid page number: %d", p)
			return out
		}
	}
	out.options.pages = pages
	return out
}

// Language sets the recognition language hint ("por", "por+eng").
func (e *Extractor) Language(language string) *Extractor {
	out := e.clone()
	out.options.language = language
	return out
}

// Threshold sets a backend's acceptance threshold: the minimum quantity
// ratio its attempt must reach to stop the cascade.
func (e *Extractor) Threshold(backend string, minQtyRatio float64) *Extractor {
	out := e.clone()
	if minQtyRatio < 0 || minQtyRatio > 1 {
		out.err = fmt.Errorf("threshold out of range: %v", minQtyRatio)
		return out
	}
	if out.options.thresholds == nil {
		out.options.thresholds = map[string]float64{}
	}
	out.options.thresholds[backend] = minQtyRatio
	return out
}

// WithBackend appends a backend to the cascade, tried after the existing
// ones. Use it to add a configured cloud backend behind the local ones.
func (e *Extractor) WithBackend(backend cascade.Backend) *Extractor {
	out := e.clone()
	out.backends = append(append([]cascade.Backend(nil), e.backends...), backend)
	return out
}

// WithoutDedupe skips the reconciliation passes, returning the winning
// attempt's records as produced.
func (e *Extractor) WithoutDedupe() *Extractor {
	out := e.clone()
	out.options.skipDedupe = true
	return out
}

// Logger sets the structured logger the cascade reports attempts to.
func (e *Extractor) Logger(logger *slog.Logger) *Extractor {
	out := e.clone()
	out.options.logger = logger
	return out
}

// Extract runs the cascade over the document and reconciles the winning
// records. It is the terminal operation of a chain.
func (e *Extractor) Extract(ctx context.Context) (*Result, error) {
	if e.err != nil {
		return nil, e.err
	}
	if e.filename == "" {
		return nil, fmt.Errorf("no document specified")
	}
	if len(e.backends) == 0 {
		return nil, fmt.Errorf("no backends configured")
	}

	logger := e.options.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	orch := cascade.NewOrchestrator(logger, e.backends...)
	if len(e.options.thresholds) > 0 {
		config := cascade.DefaultConfig()
		for name, t := range e.options.thresholds {
			config.StageThresholds[name] = t
		}
		orch.Configure(config)
	}

	run := orch.Run(ctx, &cascade.Document{
		Path:     e.filename,
		Pages:    e.options.pages,
		Language: e.options.language,
	})
	if run.Cancelled() && len(run.Records) == 0 {
		return nil, ctx.Err()
	}

	records := run.Records
	if !e.options.skipDedupe {
		records = dedupe.DedupeAll(records)
	}
	return &Result{
		Records:    records,
		Confidence: run.Confidence,
		Backend:    run.Backend,
		Audit:      run.Audit,
	}, nil
}
