package cascade

import (
	"time"

	"github.com/google/uuid"

	"github.com/tsawler/tally/model"
	"github.com/tsawler/tally/quality"
)

// AuditEntry records one attempt for the caller to inspect, whether it was
// accepted, rejected, failed, or cancelled before it ran.
type AuditEntry struct {
	ID       uuid.UUID
	Backend  string
	Metrics  quality.Metrics
	Attempt  *model.Attempt // nil when the backend failed before producing one
	Accepted bool
	Error    string // collaborator failure, "" on success
	// Cancelled marks an entry written because the run was cancelled
	// before this backend could be tried.
	Cancelled bool
	Duration  time.Duration
}

// Result is what a cascade run returns: the winning records plus the full
// attempt audit. Records is nil only when every backend failed or the run
// was cancelled before any attempt succeeded.
type Result struct {
	Records    []model.Record
	Confidence float64
	Backend    string // winning backend name, "" when nothing won
	Audit      []AuditEntry
}

// AuditFor returns the audit entry for a backend name, or nil.
func (r *Result) AuditFor(backend string) *AuditEntry {
	for i := range r.Audit {
		if r.Audit[i].Backend == backend {
			return &r.Audit[i]
		}
	}
	return nil
}

// Cancelled reports whether the run was cut short by context cancellation.
func (r *Result) Cancelled() bool {
	for i := range r.Audit {
		if r.Audit[i].Cancelled {
			return true
		}
	}
	return false
}
