package dedupe

import (
	"strings"

	"github.com/tsawler/tally/model"
)

// keywords folds a description and returns its significant words as a set.
func (d *Deduper) keywords(desc string) map[string]bool {
	out := make(map[string]bool)
	for _, w := range strings.Fields(model.Fold(desc)) {
		if len([]rune(w)) >= d.config.MinKeywordLen {
			out[w] = true
		}
	}
	return out
}

// overlap returns the fraction of the smaller keyword set shared with the
// other. Two empty descriptions overlap fully; one empty side overlaps not
// at all.
func (d *Deduper) overlap(a, b string) float64 {
	ka, kb := d.keywords(a), d.keywords(b)
	if len(ka) == 0 && len(kb) == 0 {
		return 1
	}
	if len(ka) == 0 || len(kb) == 0 {
		return 0
	}
	if len(kb) < len(ka) {
		ka, kb = kb, ka
	}
	shared := 0
	for w := range ka {
		if kb[w] {
			shared++
		}
	}
	return float64(shared) / float64(len(ka))
}

// sameItem reports whether two descriptions plausibly name the same item:
// equal after folding, one a prefix of the other, or keyword overlap at or
// above the configured threshold.
func (d *Deduper) sameItem(a, b string) bool {
	fa, fb := model.Fold(a), model.Fold(b)
	if fa == fb {
		return true
	}
	if fa != "" && fb != "" &&
		(strings.HasPrefix(fa, fb) || strings.HasPrefix(fb, fa)) {
		return true
	}
	return d.overlap(a, b) >= d.config.KeywordOverlap
}

// headerish reports whether a description looks like a short group label
// rather than a real item description.
func (d *Deduper) headerish(desc string) bool {
	return len([]rune(desc)) <= d.config.ShortHeaderLen
}
