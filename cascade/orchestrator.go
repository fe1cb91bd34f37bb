package cascade

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tsawler/tally/model"
	"github.com/tsawler/tally/quality"
)

// Orchestrator tries backends in the order given and selects a winner.
// It holds no per-document state.
type Orchestrator struct {
	backends []Backend
	config   Config
	logger   *slog.Logger
}

// NewOrchestrator creates an orchestrator over the given backends, tried
// in argument order (cheapest and most reliable first).
func NewOrchestrator(logger *slog.Logger, backends ...Backend) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		backends: backends,
		config:   DefaultConfig(),
		logger:   logger,
	}
}

// Configure sets the acceptance thresholds.
func (o *Orchestrator) Configure(config Config) {
	if config.StageThresholds == nil {
		config.StageThresholds = map[string]float64{}
	}
	o.config = config
}

// Run executes the cascade over one document. It never returns nil and it
// never propagates a backend failure: collaborator errors and panics are
// logged into the audit trail and the cascade moves on. On cancellation the
// result carries whatever attempt had already been accepted, or no records
// plus a cancellation marker in the audit.
func (o *Orchestrator) Run(ctx context.Context, doc *Document) *Result {
	result := &Result{}
	bestIdx := -1     // best attempt overall, audit index
	acceptedIdx := -1 // best accepted attempt, audit index
	cancelled := false

	for _, backend := range o.backends {
		if err := ctx.Err(); err != nil {
			result.Audit = append(result.Audit, AuditEntry{
				ID:        uuid.New(),
				Backend:   backend.Name(),
				Cancelled: true,
			})
			o.logger.Warn("cascade.cancelled", "backend", backend.Name(), "err", err)
			cancelled = true
			break
		}

		entry := o.attempt(ctx, backend, doc)
		result.Audit = append(result.Audit, entry)
		idx := len(result.Audit) - 1

		if entry.Attempt == nil {
			continue
		}

		if bestIdx < 0 || better(entry, result.Audit[bestIdx]) {
			bestIdx = idx
		}
		if entry.Accepted && (acceptedIdx < 0 || better(entry, result.Audit[acceptedIdx])) {
			acceptedIdx = idx
		}

		if entry.Accepted && !o.weak(result.Audit[bestIdx]) {
			break
		}
		// Early attempts are weak: keep escalating to costlier backends.
	}

	// A cancelled run may only hand back an attempt that passed its
	// quality gate; rejected records stay in the audit.
	winner := acceptedIdx
	if winner < 0 && !cancelled {
		winner = bestIdx
	}
	if winner >= 0 {
		win := result.Audit[winner]
		result.Records = win.Attempt.Records
		result.Confidence = win.Attempt.Confidence
		result.Backend = win.Backend
	}

	o.logger.Info("cascade.done",
		"attempts", len(result.Audit),
		"backend", result.Backend,
		"records", len(result.Records),
		"confidence", result.Confidence,
	)
	return result
}

// attempt runs one backend with failure containment and scores its output.
func (o *Orchestrator) attempt(ctx context.Context, backend Backend, doc *Document) AuditEntry {
	entry := AuditEntry{ID: uuid.New(), Backend: backend.Name()}
	start := time.Now()

	attempt, err := o.safeExtract(ctx, backend, doc)
	entry.Duration = time.Since(start)

	if err != nil {
		entry.Error = err.Error()
		o.logger.Warn("cascade.attempt.failed",
			"backend", backend.Name(),
			"err", err,
			"elapsed_ms", entry.Duration.Milliseconds(),
		)
		return entry
	}

	entry.Attempt = attempt
	entry.Metrics = quality.Compute(attempt.Records)
	entry.Accepted = entry.Metrics.Acceptable(o.config.threshold(backend.Name()))

	o.logger.Info("cascade.attempt",
		"backend", backend.Name(),
		"records", entry.Metrics.Records,
		"qty_ratio", entry.Metrics.QtyRatio,
		"confidence", attempt.Confidence,
		"accepted", entry.Accepted,
		"elapsed_ms", entry.Duration.Milliseconds(),
	)
	return entry
}

// safeExtract shields the cascade from collaborator panics.
func (o *Orchestrator) safeExtract(ctx context.Context, backend Backend, doc *Document) (attempt *model.Attempt, err error) {
	defer func() {
		if r := recover(); r != nil {
			attempt = nil
			err = fmt.Errorf("backend %s panicked: %v", backend.Name(), r)
		}
	}()
	return backend.Extract(ctx, doc)
}

// weak reports whether the best attempt so far still looks weak enough to
// justify trying a costlier backend.
func (o *Orchestrator) weak(best AuditEntry) bool {
	return best.Metrics.Records < o.config.WeakItemCount ||
		best.Metrics.QtyRatio < o.config.WeakQtyRatio
}

// better orders audit entries by attempt confidence, breaking ties with
// record count.
func better(a, b AuditEntry) bool {
	if a.Attempt.Confidence != b.Attempt.Confidence {
		return a.Attempt.Confidence > b.Attempt.Confidence
	}
	return a.Metrics.Records > b.Metrics.Records
}
