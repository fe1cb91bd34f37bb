package cloud

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tsawler/tally/cascade"
	"github.com/tsawler/tally/itemcode"
	"github.com/tsawler/tally/model"
)

// RequestBuilder produces the JSON body posted to the extraction service
// for one document. The prompt and payload format belong to the caller;
// the backend only owns the response contract.
type RequestBuilder func(doc *cascade.Document) (any, error)

// Config holds the cloud backend settings.
type Config struct {
	// URL is the extraction endpoint. Required.
	URL string

	// Headers are sent with every request (authorization, API version).
	Headers map[string]string

	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client

	// BuildRequest produces the request body for a document. Required.
	BuildRequest RequestBuilder
}

// Backend calls a model-based extraction service and scores its
// pre-structured answer.
type Backend struct {
	engine *cascade.Engine
	config Config
	logger *slog.Logger
}

// New creates a cloud backend over the shared extraction engine.
func New(engine *cascade.Engine, config Config, logger *slog.Logger) *Backend {
	if engine == nil {
		engine = cascade.NewEngine()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{engine: engine, config: config, logger: logger}
}

// Name identifies the backend in cascade configuration and audit entries.
func (b *Backend) Name() string {
	return "cloud"
}

// Extract posts the document to the extraction service, validates the
// answer and maps it onto records for scoring.
func (b *Backend) Extract(ctx context.Context, doc *cascade.Document) (*model.Attempt, error) {
	if b.config.URL == "" || b.config.BuildRequest == nil {
		return nil, fmt.Errorf("cloud backend not configured")
	}

	body, err := b.config.BuildRequest(doc)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	raw, err := sendJSON(ctx, b.config.HTTPClient, b.config.URL, body, b.config.Headers, b.logger)
	if err != nil {
		return nil, err
	}

	cleaned, dropped, err := sanitize(raw)
	if err != nil {
		return nil, err
	}
	if err := validate(cleaned); err != nil {
		return nil, err
	}

	var resp response
	if err := json.Unmarshal(cleaned, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	records := mapRecords(resp.Items)
	attempt := b.engine.ScoreRecords(records, b.Name())
	if len(dropped) > 0 {
		attempt.Note(fmt.Sprintf("sanitized fields: %s", strings.Join(dropped, ", ")))
	}
	return attempt, nil
}

// mapRecords converts validated line items into records. Rows whose
// description is empty after trimming are dropped.
func mapRecords(items []lineItem) []model.Record {
	records := make([]model.Record, 0, len(items))
	for _, item := range items {
		desc := model.NormalizeSpace(item.Description)
		if desc == "" {
			continue
		}
		rec := model.Record{
			Description: desc,
			Unit:        model.NormalizeUnit(item.Unit),
			Quantity:    model.ParseQuantity(item.Quantity),
			Page:        item.Page,
			Source:      model.SourceCloud,
		}
		prefix, bare := itemcode.SplitPrefix(strings.TrimSpace(item.Code))
		if code, ok := itemcode.Parse(bare); ok {
			rec.Code = code
			rec.Prefix = prefix
		}
		records = append(records, rec)
	}
	return records
}
