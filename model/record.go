package model

import (
	"github.com/shopspring/decimal"

	"github.com/tsawler/tally/itemcode"
)

// Source identifies which backend or source layer produced a record.
type Source string

const (
	// SourceStructured marks records built from an already cell-delimited
	// table (native text-layer table reader, spreadsheet rows).
	SourceStructured Source = "structured"

	// SourceTokens marks records rebuilt from positioned text tokens
	// (OCR or raw text-layer words) via grid reconstruction.
	SourceTokens Source = "tokens"

	// SourceCloud marks records returned pre-structured by a model-based
	// extraction collaborator.
	SourceCloud Source = "cloud"

	// SourceHTML marks records read from an HTML table.
	SourceHTML Source = "html"
)

// Record is the canonical extracted line item.
//
// A record is created by the row interpreter or by a secondary-source merge.
// After creation it is mutated only by deduplication (description, unit and
// quantity backfill) and by the restart tracker (code prefixing). Records are
// never shared across goroutines.
type Record struct {
	// Code is the hierarchical item code; the zero Code means the row had
	// none (codeless rows can still survive as appended secondary items).
	Code itemcode.Code

	// Prefix is the segment restart prefix ("S2"), empty for the first
	// numbering lineage. Once set it is never changed again.
	Prefix string

	// Suffix disambiguates distinct items that share a code within one
	// segment ("A", "B"). Assigned and cleaned up by deduplication.
	Suffix string

	// Description is the free-text description; may be empty pending
	// enrichment from a secondary source.
	Description string

	// Unit is the normalized unit token ("UN", "M2"); empty when unknown.
	Unit string

	// Quantity is the extracted quantity; Valid is false when the row
	// carried none.
	Quantity decimal.NullDecimal

	// Segment identifies the logical table/section; 0 is the first or
	// ungrouped segment.
	Segment int

	// Page is the 1-based page number, 0 when unknown.
	Page int

	// Source tags the backend that produced this record.
	Source Source

	// AutoDetected marks records recovered heuristically (hidden-item
	// splits, embedded codes) rather than read from a clean coded row.
	AutoDetected bool

	// DescriptionFromSecondary marks descriptions recovered from a
	// secondary source during a cross-source merge.
	DescriptionFromSecondary bool
}

// HasCode reports whether the record carries an item code.
func (r *Record) HasCode() bool {
	return !r.Code.IsZero()
}

// HasQuantity reports whether the record carries a non-zero quantity.
func (r *Record) HasQuantity() bool {
	return r.Quantity.Valid && !r.Quantity.Decimal.IsZero()
}

// IsComplete reports whether code, description, unit and quantity are all
// present.
func (r *Record) IsComplete() bool {
	return r.HasCode() && r.Description != "" && r.Unit != "" && r.HasQuantity()
}

// DisplayCode renders the code with its segment prefix and any
// disambiguating suffix, the form shown to callers ("S2-1.4", "1.4-A").
func (r *Record) DisplayCode() string {
	s := itemcode.Prefixed(r.Prefix, r.Code)
	if r.Suffix != "" {
		s += "-" + r.Suffix
	}
	return s
}

// BareCode renders the code without any segment prefix.
func (r *Record) BareCode() string {
	return r.Code.String()
}

// SetQuantity sets a present quantity value.
func (r *Record) SetQuantity(d decimal.Decimal) {
	r.Quantity = decimal.NullDecimal{Decimal: d, Valid: true}
}

// Quantity values within this relative tolerance are considered the same
// when collapsing parent/child duplicates.
const quantityTolerance = 0.01

// QuantitySimilar reports whether two records carry equal or near-equal
// quantities. Records missing a quantity are similar only to other records
// missing one.
func QuantitySimilar(a, b *Record) bool {
	if !a.Quantity.Valid || !b.Quantity.Valid {
		return a.Quantity.Valid == b.Quantity.Valid
	}
	qa, qb := a.Quantity.Decimal, b.Quantity.Decimal
	if qa.Equal(qb) {
		return true
	}
	max := decimal.Max(qa.Abs(), qb.Abs())
	if max.IsZero() {
		return true
	}
	diff := qa.Sub(qb).Abs()
	return diff.Div(max).LessThanOrEqual(decimal.NewFromFloat(quantityTolerance))
}

// CloneRecords returns a deep-enough copy of a record list: the slice and the
// record values are copied, which is sufficient because Record contains no
// shared mutable references.
func CloneRecords(records []Record) []Record {
	if records == nil {
		return nil
	}
	out := make([]Record, len(records))
	copy(out, records)
	return out
}
