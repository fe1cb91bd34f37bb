package segtrack

import (
	"github.com/tsawler/tally/itemcode"
	"github.com/tsawler/tally/model"
)

// Config holds restart-detection parameters.
type Config struct {
	// MinRestartOverlap is the minimum number of a table's codes that must
	// already be present in the current segment's seen set for a numbering
	// restart to be accepted as a prefixed group. Empirically tuned; keep
	// as configuration.
	MinRestartOverlap int
}

// DefaultConfig returns the default tracker configuration.
func DefaultConfig() Config {
	return Config{MinRestartOverlap: 2}
}

// Tracker assigns segment ids and restart prefixes to the records of one
// document. It holds per-document state: create one tracker per document
// and discard it afterwards.
type Tracker struct {
	config   Config
	segments []*model.Segment
	current  *model.Segment

	// prefixCount is the global restart counter; the first accepted restart
	// produces prefix "S2".
	prefixCount int
}

// NewTracker creates a tracker with default configuration.
func NewTracker() *Tracker {
	return &Tracker{config: DefaultConfig(), prefixCount: 1}
}

// Configure sets the tracker configuration.
func (t *Tracker) Configure(config Config) {
	t.config = config
}

// Segments returns the segments opened so far, in document order.
func (t *Tracker) Segments() []*model.Segment {
	return t.segments
}

// ObserveTable classifies one recovered table against the running segment
// state and stamps every record in it with a segment id and, for accepted
// numbering restarts, a fresh prefix. Records are mutated in place; a
// record's prefix, once assigned, is never changed again.
func (t *Tracker) ObserveTable(records []model.Record, signature, label string) {
	codes := tableCodes(records)

	switch {
	case t.current == nil:
		t.open(signature, label)
	case signature != "" && signature != t.current.Signature:
		t.open(signature, label)
	case label != "" && label != t.current.Label:
		t.open(signature, label)
	default:
		t.classifyRestart(records, codes, signature, label)
	}

	for i := range records {
		records[i].Segment = t.current.ID
	}
	for _, c := range codes {
		t.current.Observe(c)
	}
}

// classifyRestart decides what a same-signature, same-label table with
// non-increasing numbering means: a plain continuation, a prefixed restart,
// or a new segment.
func (t *Tracker) classifyRestart(records []model.Record, codes []itemcode.Code, signature, label string) {
	if len(codes) == 0 {
		return // codeless table, nothing to decide
	}

	first := codes[0]
	if t.current.MaxCode.IsZero() || !first.Less(t.current.MaxCode) {
		return // numbering continues, same group
	}

	if t.current.Overlap(codes) >= t.config.MinRestartOverlap {
		// Enough already-seen codes: the same table restarted its
		// numbering. Keep the segment, stamp a fresh prefix group.
		t.prefixCount++
		prefix := itemcode.PrefixFor(t.prefixCount)
		for i := range records {
			if records[i].Prefix == "" && records[i].HasCode() {
				records[i].Prefix = prefix
			}
		}
		return
	}

	// Restarted numbering with unfamiliar codes: an independent table.
	t.open(signature, label)
}

// open starts a new segment.
func (t *Tracker) open(signature, label string) {
	seg := model.NewSegment(len(t.segments), signature, label)
	t.segments = append(t.segments, seg)
	t.current = seg
}

// tableCodes collects the non-zero codes of a table in document order.
func tableCodes(records []model.Record) []itemcode.Code {
	codes := make([]itemcode.Code, 0, len(records))
	for i := range records {
		if records[i].HasCode() {
			codes = append(codes, records[i].Code)
		}
	}
	return codes
}
