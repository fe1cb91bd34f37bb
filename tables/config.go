package tables

// Config holds structure-recovery parameters. The defaults were tuned on
// real scanned planilhas; treat them as configuration, not derivable
// constants.
type Config struct {
	// RowToleranceMin is the smallest vertical clustering tolerance
	// (points/pixels), used when tokens are very small.
	RowToleranceMin float64

	// RowToleranceFactor scales the median token height into the vertical
	// clustering tolerance.
	RowToleranceFactor float64

	// ColToleranceMin is the smallest horizontal clustering tolerance.
	ColToleranceMin float64

	// ColToleranceFactor scales the median token width into the horizontal
	// clustering tolerance.
	ColToleranceFactor float64

	// PhraseGapMin and PhraseGapFactor control how close two word tokens on
	// the same row must be (gap between boxes, scaled from median token
	// height) to be merged into one phrase before column clustering.
	PhraseGapMin    float64
	PhraseGapFactor float64

	// MinHeaderKeywords is how many header keywords a row must match to be
	// taken as the header row.
	MinHeaderKeywords int

	// MinItemColumnScore is the minimum fraction of a column's non-empty
	// cells that must parse as item codes for the column to hold (or keep)
	// the item role.
	MinItemColumnScore float64

	// MinUnitColumnScore and MinQuantityColumnScore are the content-based
	// inference thresholds for the unit and quantity roles.
	MinUnitColumnScore     float64
	MinQuantityColumnScore float64

	// DemoteScoreFloor is the validation floor: a header-assigned role whose
	// content score falls below it is demoted back to "other".
	DemoteScoreFloor float64
}

// DefaultConfig returns the default structure-recovery configuration.
func DefaultConfig() Config {
	return Config{
		RowToleranceMin:        6,
		RowToleranceFactor:     0.6,
		ColToleranceMin:        18,
		ColToleranceFactor:     0.7,
		PhraseGapMin:           4,
		PhraseGapFactor:        0.6,
		MinHeaderKeywords:      2,
		MinItemColumnScore:     0.5,
		MinUnitColumnScore:     0.4,
		MinQuantityColumnScore: 0.4,
		DemoteScoreFloor:       0.2,
	}
}
