package dedupe

import (
	"strings"

	"github.com/tsawler/tally/itemcode"
	"github.com/tsawler/tally/model"
)

// Merge reconciles two independently extracted record lists. The primary
// list's records and ordering win; matched secondary records only backfill
// the primary's missing quantity and unit, or replace a materially shorter
// description. Unmatched secondary records are appended after the primary
// in their own order. Neither input is mutated.
func (d *Deduper) Merge(primary, secondary []model.Record) []model.Record {
	if len(secondary) == 0 {
		return model.CloneRecords(primary)
	}
	if len(primary) == 0 {
		return model.CloneRecords(secondary)
	}

	out := model.CloneRecords(primary)
	byCode := make(map[string][]int, len(out))
	byDesc := make(map[string]bool, len(out))
	for i := range out {
		if out[i].HasCode() {
			key := mergeCode(&out[i])
			byCode[key] = append(byCode[key], i)
		} else if f := model.Fold(out[i].Description); f != "" {
			byDesc[f] = true
		}
	}

	var appended []model.Record
	for i := range secondary {
		sec := secondary[i]

		if !sec.HasCode() {
			f := model.Fold(sec.Description)
			if f == "" || byDesc[f] {
				continue
			}
			byDesc[f] = true
			appended = append(appended, sec)
			continue
		}

		if idx, ok := d.matchCoded(out, byCode[mergeCode(&sec)], &sec); ok {
			d.enrich(&out[idx], &sec)
			continue
		}
		appended = append(appended, sec)
	}
	return append(out, appended...)
}

// Merge reconciles two record lists with default configuration.
func Merge(primary, secondary []model.Record) []model.Record {
	return NewDeduper().Merge(primary, secondary)
}

// matchCoded finds the primary record a coded secondary record refers to:
// first a description-prefix match among the same-code candidates, then a
// similarity match. An empty description on either side matches by code
// alone.
func (d *Deduper) matchCoded(primary []model.Record, candidates []int, sec *model.Record) (int, bool) {
	fs := model.Fold(sec.Description)
	for _, i := range candidates {
		fp := model.Fold(primary[i].Description)
		if strings.HasPrefix(fp, fs) || strings.HasPrefix(fs, fp) {
			return i, true
		}
	}
	for _, i := range candidates {
		if d.overlap(primary[i].Description, sec.Description) >= d.config.DescriptionSimilarity {
			return i, true
		}
	}
	return 0, false
}

// enrich backfills a matched primary record from its secondary counterpart
// and upgrades the description when the secondary's is materially longer.
func (d *Deduper) enrich(prim, sec *model.Record) {
	backfill(prim, sec)
	gain := len([]rune(sec.Description)) - len([]rune(prim.Description))
	if gain >= d.config.MinDescriptionGain {
		prim.Description = sec.Description
		prim.DescriptionFromSecondary = true
	}
}

// mergeCode keys a record by its prefixed bare code, ignoring any
// disambiguating suffix.
func mergeCode(r *model.Record) string {
	return itemcode.Prefixed(r.Prefix, r.Code)
}
