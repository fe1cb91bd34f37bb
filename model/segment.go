package model

import "github.com/tsawler/tally/itemcode"

// Segment identifies one logically distinct table or section within a
// document. Segments only live for the duration of one document's
// processing.
type Segment struct {
	// ID is the segment index in document order; 0 is the first segment.
	ID int

	// Signature is the structural signature of the grid that opened the
	// segment (header labels and column-role layout).
	Signature string

	// Label is the short institutional/category label attached to the
	// segment's table, if any ("LOTE 2", "BLOCO B").
	Label string

	// MaxCode is the highest item code seen so far.
	MaxCode itemcode.Code

	// Seen holds the normalized (bare) codes seen so far.
	Seen map[string]bool
}

// NewSegment creates a segment with an empty seen-code set.
func NewSegment(id int, signature, label string) *Segment {
	return &Segment{
		ID:        id,
		Signature: signature,
		Label:     label,
		Seen:      make(map[string]bool),
	}
}

// Observe registers a code as seen and advances the running maximum.
func (s *Segment) Observe(c itemcode.Code) {
	if c.IsZero() {
		return
	}
	s.Seen[c.String()] = true
	if s.MaxCode.IsZero() || s.MaxCode.Less(c) {
		s.MaxCode = c
	}
}

// Overlap counts how many of the given codes were already seen in this
// segment.
func (s *Segment) Overlap(codes []itemcode.Code) int {
	n := 0
	for _, c := range codes {
		if !c.IsZero() && s.Seen[c.String()] {
			n++
		}
	}
	return n
}
