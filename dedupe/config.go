package dedupe

// Config holds the reconciliation thresholds. The similarity and overlap
// values are empirically tuned; treat them as knobs, not derivable
// constants.
type Config struct {
	// KeywordOverlap is the minimum keyword-set overlap for two
	// descriptions to count as describing the same item during the
	// collapse passes.
	KeywordOverlap float64

	// DescriptionSimilarity is the minimum overlap for the merge pass to
	// match a secondary record to a primary one when the description
	// prefixes disagree.
	DescriptionSimilarity float64

	// ShortHeaderLen is the description length at or below which a parent
	// row is treated as an uninformative group label rather than a real
	// item description.
	ShortHeaderLen int

	// MinDescriptionGain is how many runes longer a secondary description
	// must be before it replaces the primary's during a merge.
	MinDescriptionGain int

	// MinKeywordLen filters out short connective words ("DE", "E", "EM")
	// before overlap comparison.
	MinKeywordLen int
}

// DefaultConfig returns the default reconciliation configuration.
func DefaultConfig() Config {
	return Config{
		KeywordOverlap:        0.5,
		DescriptionSimilarity: 0.65,
		ShortHeaderLen:        25,
		MinDescriptionGain:    15,
		MinKeywordLen:         3,
	}
}
