package dedupe

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tsawler/tally/model"
)

// Deduper runs the reconciliation passes. It is stateless apart from
// configuration, so one deduper serves any number of record lists.
type Deduper struct {
	config Config
}

// NewDeduper creates a deduper with default configuration.
func NewDeduper() *Deduper {
	return &Deduper{config: DefaultConfig()}
}

// Configure sets the reconciliation thresholds.
func (d *Deduper) Configure(config Config) {
	d.config = config
}

// DedupeAll runs every collapse pass over a copy of the records and returns
// the reconciled list. The input is never mutated. The operation is
// idempotent.
func (d *Deduper) DedupeAll(records []model.Record) []model.Record {
	out := model.CloneRecords(records)
	out = d.collapseParentChild(out)
	out = d.collapseRestarts(out)
	out = d.collapseInSegment(out)
	d.cleanOrphanSuffixes(out)
	return out
}

// DedupeAll runs the collapse passes with default configuration.
func DedupeAll(records []model.Record) []model.Record {
	return NewDeduper().DedupeAll(records)
}

// collapseParentChild removes one of a parent/child code pair ("1.2" and
// "1.2.1") that carry similar quantities and overlapping descriptions: the
// same physical row split across two numbering levels. The parent survives
// unless its description is a short group label and the child carries the
// real one.
func (d *Deduper) collapseParentChild(records []model.Record) []model.Record {
	byCode := make(map[string]int, len(records))
	for i := range records {
		if records[i].HasCode() {
			key := records[i].Prefix + "|" + records[i].BareCode()
			if _, ok := byCode[key]; !ok {
				byCode[key] = i
			}
		}
	}

	removed := make([]bool, len(records))
	for i := range records {
		child := &records[i]
		if removed[i] || !child.HasCode() || child.Code.Depth() < 2 {
			continue
		}
		j, ok := byCode[child.Prefix+"|"+child.Code.Parent().String()]
		if !ok || removed[j] {
			continue
		}
		parent := &records[j]
		if parent.Segment != child.Segment {
			continue
		}
		if !model.QuantitySimilar(parent, child) {
			continue
		}
		if d.overlap(parent.Description, child.Description) < d.config.KeywordOverlap {
			continue
		}

		keep, drop := parent, child
		di := i
		if d.headerish(parent.Description) &&
			len(child.Description) > len(parent.Description) {
			keep, drop = child, parent
			di = j
		}
		backfill(keep, drop)
		removed[di] = true
	}
	return compact(records, removed)
}

// collapseRestarts removes records duplicated across restart prefixes: the
// same (bare code, unit, quantity) appearing under "1.4" and "S2-1.4" is
// one item scanned twice, not two items.
func (d *Deduper) collapseRestarts(records []model.Record) []model.Record {
	kept := make(map[string]int, len(records))
	removed := make([]bool, len(records))

	for i := range records {
		r := &records[i]
		if !r.HasCode() {
			continue
		}
		key := r.BareCode() + "|" + r.Unit + "|" + quantityKey(r)
		j, ok := kept[key]
		if !ok {
			kept[key] = i
			continue
		}
		if d.betterRestart(r, &records[j]) {
			backfill(r, &records[j])
			records[j] = *r
		} else {
			backfill(&records[j], r)
		}
		removed[i] = true
	}
	return compact(records, removed)
}

// collapseInSegment reconciles records that share a bare code within one
// segment. Records describing the same item collapse onto the best one;
// genuinely distinct items keep the shared code and receive alphabetic
// suffixes instead.
func (d *Deduper) collapseInSegment(records []model.Record) []model.Record {
	groups := make(map[string][]int, len(records))
	var order []string
	for i := range records {
		r := &records[i]
		if !r.HasCode() {
			continue
		}
		key := fmt.Sprintf("%d|%s|%s", r.Segment, r.Prefix, r.BareCode())
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], i)
	}

	removed := make([]bool, len(records))
	for _, key := range order {
		group := groups[key]
		if len(group) < 2 {
			continue
		}

		// Collapse same-item members onto a representative, keeping the
		// distinct ones.
		var distinct []int
		for _, i := range group {
			merged := false
			for _, j := range distinct {
				if !d.sameItem(records[i].Description, records[j].Description) {
					continue
				}
				if d.betterSegment(&records[i], &records[j]) {
					backfill(&records[i], &records[j])
					records[j] = records[i]
				} else {
					backfill(&records[j], &records[i])
				}
				removed[i] = true
				merged = true
				break
			}
			if !merged {
				distinct = append(distinct, i)
			}
		}

		if len(distinct) > 1 {
			for n, i := range distinct {
				records[i].Suffix = string(rune('A' + n))
			}
		} else {
			records[distinct[0]].Suffix = ""
		}
	}
	return compact(records, removed)
}

// cleanOrphanSuffixes strips a disambiguating suffix whose siblings were
// all removed by later reconciliation: a lone "1.4-A" goes back to "1.4".
func (d *Deduper) cleanOrphanSuffixes(records []model.Record) {
	count := make(map[string]int, len(records))
	for i := range records {
		if records[i].HasCode() {
			count[segmentKey(&records[i])]++
		}
	}
	for i := range records {
		r := &records[i]
		if r.Suffix != "" && count[segmentKey(r)] == 1 {
			r.Suffix = ""
		}
	}
}

func segmentKey(r *model.Record) string {
	return fmt.Sprintf("%d|%s|%s", r.Segment, r.Prefix, r.BareCode())
}

// betterRestart orders restart-prefix duplicates: a real description beats
// a group label, longer beats shorter, complete beats incomplete, and the
// earlier numbering lineage beats the later one.
func (d *Deduper) betterRestart(a, b *model.Record) bool {
	if ah, bh := d.headerish(a.Description), d.headerish(b.Description); ah != bh {
		return bh
	}
	if la, lb := len(a.Description), len(b.Description); la != lb {
		return la > lb
	}
	ac := a.Unit != "" && a.HasQuantity()
	bc := b.Unit != "" && b.HasQuantity()
	if ac != bc {
		return ac
	}
	return prefixIndex(a.Prefix) < prefixIndex(b.Prefix)
}

// betterSegment orders in-segment duplicates: longer description, then a
// known page, then structured provenance over grid reconstruction.
func (d *Deduper) betterSegment(a, b *model.Record) bool {
	if la, lb := len(a.Description), len(b.Description); la != lb {
		return la > lb
	}
	if ap, bp := a.Page > 0, b.Page > 0; ap != bp {
		return ap
	}
	as := a.Source == model.SourceStructured
	bs := b.Source == model.SourceStructured
	if as != bs {
		return as
	}
	return false
}

// backfill copies unit, quantity and page onto dst where dst lacks them.
func backfill(dst, src *model.Record) {
	if dst.Unit == "" {
		dst.Unit = src.Unit
	}
	if !dst.HasQuantity() && src.HasQuantity() {
		dst.Quantity = src.Quantity
	}
	if dst.Page == 0 {
		dst.Page = src.Page
	}
}

// quantityKey renders a quantity for grouping; absent quantities share a
// bucket.
func quantityKey(r *model.Record) string {
	if !r.Quantity.Valid {
		return "-"
	}
	return r.Quantity.Decimal.String()
}

// prefixIndex maps a restart prefix to its ordinal: "" is 1, "S2" is 2.
func prefixIndex(prefix string) int {
	if prefix == "" {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimPrefix(prefix, "S"))
	if err != nil {
		return 1 << 30
	}
	return n
}

// compact drops the removed records, preserving order.
func compact(records []model.Record, removed []bool) []model.Record {
	out := records[:0]
	for i := range records {
		if !removed[i] {
			out = append(out, records[i])
		}
	}
	return out
}
