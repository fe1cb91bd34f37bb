package quality

import (
	"github.com/tsawler/tally/model"
)

// Metrics captures completeness and ordering statistics over a record set.
type Metrics struct {
	Records int

	// ItemRatio, UnitRatio and QtyRatio are the fractions of records with
	// a code, a unit, and a non-zero quantity.
	ItemRatio float64
	UnitRatio float64
	QtyRatio  float64

	// CompleteRatio is the fraction of records with all four fields.
	CompleteRatio float64

	// SequentialRatio is the fraction of adjacent coded pairs where the
	// second code is not below the first. Out-of-order codes are valid
	// restart evidence, so this only ever degrades confidence, never
	// rejects records.
	SequentialRatio float64
}

// Compute measures a record set. An empty set yields the zero Metrics.
func Compute(records []model.Record) Metrics {
	m := Metrics{Records: len(records)}
	if len(records) == 0 {
		return m
	}

	var items, units, qtys, complete int
	for i := range records {
		r := &records[i]
		if r.HasCode() {
			items++
		}
		if r.Unit != "" {
			units++
		}
		if r.HasQuantity() {
			qtys++
		}
		if r.IsComplete() {
			complete++
		}
	}

	n := float64(len(records))
	m.ItemRatio = float64(items) / n
	m.UnitRatio = float64(units) / n
	m.QtyRatio = float64(qtys) / n
	m.CompleteRatio = float64(complete) / n
	m.SequentialRatio = sequentialRatio(records)
	return m
}

// sequentialRatio compares each adjacent pair of coded records within the
// same prefix group; pairs spanning a restart prefix are skipped, since a
// restart legitimately drops the numbering.
func sequentialRatio(records []model.Record) float64 {
	pairs, ordered := 0, 0
	prev := -1
	for i := range records {
		if !records[i].HasCode() {
			continue
		}
		if prev >= 0 && records[prev].Prefix == records[i].Prefix {
			pairs++
			if !records[i].Code.Less(records[prev].Code) {
				ordered++
			}
		}
		prev = i
	}
	if pairs == 0 {
		return 1
	}
	return float64(ordered) / float64(pairs)
}

// Confidence weights in the composite score. Item-column detection
// dominates: when the item column is wrong everything downstream is wrong.
const (
	weightItemColumn = 0.40
	weightSequential = 0.20
	weightQuantity   = 0.20
	weightUnit       = 0.10
	weightBonus      = 0.05
)

// Confidence blends the metrics with structure-recovery signals into a
// composite 0-1 score: 40% item-column detection confidence, 20% ordering
// cleanliness, 20% quantity completeness, 10% unit completeness, plus two
// 5% structural bonuses (detected header row, hierarchical numbering).
// Empty record sets always score 0.
func Confidence(m Metrics, itemColumnConfidence float64, headerDetected, hierarchical bool) float64 {
	if m.Records == 0 {
		return 0
	}
	score := weightItemColumn*itemColumnConfidence +
		weightSequential*m.SequentialRatio +
		weightQuantity*m.QtyRatio +
		weightUnit*m.UnitRatio
	if headerDetected {
		score += weightBonus
	}
	if hierarchical {
		score += weightBonus
	}
	if score > 1 {
		score = 1
	}
	return score
}

// Hierarchical reports whether the record set shows parent/child numbering
// (some code is an ancestor of another), the signature of a real item
// breakdown structure.
func Hierarchical(records []model.Record) bool {
	seen := make(map[string]bool, len(records))
	for i := range records {
		if records[i].HasCode() {
			seen[records[i].Code.String()] = true
		}
	}
	for i := range records {
		c := records[i].Code
		if c.Depth() > 1 && seen[c.Parent().String()] {
			return true
		}
	}
	return false
}

// Acceptable reports whether a record set clears a stage's quantity-ratio
// threshold with at least one fully complete record.
func (m Metrics) Acceptable(minQtyRatio float64) bool {
	return m.Records > 0 && m.QtyRatio >= minQtyRatio && m.CompleteRatio > 0
}
