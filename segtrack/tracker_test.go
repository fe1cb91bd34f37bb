package segtrack

import (
	"fmt"
	"testing"

	"github.com/tsawler/tally/itemcode"
	"github.com/tsawler/tally/model"
)

func recordsFor(codes ...string) []model.Record {
	out := make([]model.Record, len(codes))
	for i, c := range codes {
		out[i] = model.Record{Code: itemcode.MustParse(c), Description: "ITEM " + c}
	}
	return out
}

// rangeCodes builds "p.1".."p.n" code strings.
func rangeCodes(p, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%d.%d", p, i+1)
	}
	return out
}

func TestTracker_FirstSegmentNeverPrefixed(t *testing.T) {
	tr := NewTracker()

	a := recordsFor("1.1", "1.2", "1.3")
	b := recordsFor("7.1", "7.2") // disjoint, higher: plain continuation
	tr.ObserveTable(a, "sig", "")
	tr.ObserveTable(b, "sig", "")

	for _, recs := range [][]model.Record{a, b} {
		for _, r := range recs {
			if r.Prefix != "" {
				t.Errorf("record %s has prefix %q, want none", r.BareCode(), r.Prefix)
			}
		}
	}
	if len(tr.Segments()) != 1 {
		t.Errorf("got %d segments, want 1", len(tr.Segments()))
	}
}

func TestTracker_RestartGetsPrefix(t *testing.T) {
	tr := NewTracker()

	a := recordsFor(append(rangeCodes(1, 20), rangeCodes(2, 10)...)...)
	tr.ObserveTable(a, "sig", "")

	b := recordsFor("1.1", "1.2")
	tr.ObserveTable(b, "sig", "")

	for _, r := range b {
		if r.Prefix != "S2" {
			t.Errorf("restarted record %s prefix = %q, want S2", r.BareCode(), r.Prefix)
		}
		if r.DisplayCode() != "S2-"+r.BareCode() {
			t.Errorf("DisplayCode() = %q", r.DisplayCode())
		}
	}
	for _, r := range a {
		if r.Prefix != "" {
			t.Errorf("first table record %s gained prefix %q", r.BareCode(), r.Prefix)
		}
	}
	if len(tr.Segments()) != 1 {
		t.Errorf("restart opened a new segment: %d segments", len(tr.Segments()))
	}
}

func TestTracker_DisjointRestartOpensSegment(t *testing.T) {
	tr := NewTracker()

	a := recordsFor(rangeCodes(5, 10)...)
	tr.ObserveTable(a, "sig", "")

	b := recordsFor("1.1", "1.2") // lower numbering, nothing seen before
	tr.ObserveTable(b, "sig", "")

	for _, r := range b {
		if r.Prefix != "" {
			t.Errorf("disjoint table record %s prefix = %q, want none", r.BareCode(), r.Prefix)
		}
		if r.Segment != 1 {
			t.Errorf("disjoint table record %s segment = %d, want 1", r.BareCode(), r.Segment)
		}
	}
	if len(tr.Segments()) != 2 {
		t.Fatalf("got %d segments, want 2", len(tr.Segments()))
	}
}

func TestTracker_SignatureChangeOpensSegment(t *testing.T) {
	tr := NewTracker()

	a := recordsFor("1.1", "1.2")
	tr.ObserveTable(a, "item:0;description:1", "")

	b := recordsFor("1.1", "1.2") // full overlap, but a different layout
	tr.ObserveTable(b, "item:0;description:1;unit:2", "")

	if len(tr.Segments()) != 2 {
		t.Fatalf("got %d segments, want 2", len(tr.Segments()))
	}
	for _, r := range b {
		if r.Prefix != "" {
			t.Errorf("new-segment record got prefix %q", r.Prefix)
		}
		if r.Segment != 1 {
			t.Errorf("record segment = %d, want 1", r.Segment)
		}
	}
}

func TestTracker_LabelChangeOpensSegment(t *testing.T) {
	tr := NewTracker()

	a := recordsFor("1.1", "1.2")
	tr.ObserveTable(a, "sig", "BLOCO A")

	b := recordsFor("1.1", "1.2")
	tr.ObserveTable(b, "sig", "BLOCO B")

	if len(tr.Segments()) != 2 {
		t.Fatalf("got %d segments, want 2", len(tr.Segments()))
	}
	if tr.Segments()[1].Label != "BLOCO B" {
		t.Errorf("second segment label = %q", tr.Segments()[1].Label)
	}
}

func TestTracker_OverlapBelowThreshold(t *testing.T) {
	tr := NewTracker()
	tr.Configure(Config{MinRestartOverlap: 2})

	a := recordsFor(rangeCodes(1, 10)...)
	tr.ObserveTable(a, "sig", "")

	// Only one code overlaps: not enough evidence for a restart.
	b := recordsFor("1.1", "9.9")
	tr.ObserveTable(b, "sig", "")

	for _, r := range b {
		if r.Prefix != "" {
			t.Errorf("record %s prefixed on overlap below threshold", r.BareCode())
		}
	}
	if len(tr.Segments()) != 2 {
		t.Errorf("got %d segments, want 2 (new segment, not restart)", len(tr.Segments()))
	}
}

func TestTracker_SecondRestartIncrementsPrefix(t *testing.T) {
	tr := NewTracker()

	tr.ObserveTable(recordsFor(rangeCodes(1, 10)...), "sig", "")

	b := recordsFor("1.1", "1.2", "1.3")
	tr.ObserveTable(b, "sig", "")
	c := recordsFor("1.1", "1.2")
	tr.ObserveTable(c, "sig", "")

	if b[0].Prefix != "S2" {
		t.Errorf("first restart prefix = %q, want S2", b[0].Prefix)
	}
	if c[0].Prefix != "S3" {
		t.Errorf("second restart prefix = %q, want S3", c[0].Prefix)
	}
}
