package rowscan

// Config holds row-interpretation parameters.
type Config struct {
	// LabelLookback is how many rows back a section-header label still
	// applies to a restart decision.
	LabelLookback int

	// SectionLabelMaxLen is the longest description (in runes) a bare-code
	// row may carry and still count as a section header rather than an item.
	SectionLabelMaxLen int

	// HiddenMinDescLen is the minimum description length (in runes) before
	// the hidden-item recovery pass scans it for an embedded record.
	HiddenMinDescLen int

	// HiddenMinOffset is the minimum byte offset of an embedded code inside
	// a description; codes at the very start are the row's own code echoed
	// into the wrong column, not a swallowed second record.
	HiddenMinOffset int
}

// DefaultConfig returns the default row-interpretation configuration.
func DefaultConfig() Config {
	return Config{
		LabelLookback:      3,
		SectionLabelMaxLen: 45,
		HiddenMinDescLen:   60,
		HiddenMinOffset:    10,
	}
}
