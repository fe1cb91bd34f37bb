package tables

import (
	"github.com/tsawler/tally/itemcode"
	"github.com/tsawler/tally/model"
)

// columnStats holds per-column content statistics over non-empty body cells.
type columnStats struct {
	nonEmpty  int
	codeFrac  float64 // fraction parsing as item codes
	unitFrac  float64 // fraction in the unit vocabulary
	numFrac   float64 // fraction parsing as plain numbers
	avgLength float64 // average rune length, description signal
}

// resolveRoles assigns column roles in three passes: header-keyword mapping,
// content-based inference for unmapped roles, then validation that demotes
// roles whose column statistics disagree with the assignment. The resolution
// is deterministic for a fixed grid.
func (b *Builder) resolveRoles(grid *model.Grid) {
	if grid.RowCount() == 0 || grid.ColCount() == 0 {
		return
	}

	headerRow, headerRoles, labels := b.detectHeader(grid)
	grid.HeaderRow = headerRow
	grid.HeaderLabels = labels

	roles := model.RoleMap{}
	for col, role := range headerRoles {
		if _, dup := roles[role]; !dup {
			roles[role] = col
		}
	}

	stats := b.collectStats(grid, headerRow)
	b.inferMissing(roles, stats)
	b.validate(roles, stats)

	grid.Roles = roles
	if col, ok := roles[model.RoleItem]; ok && col < len(stats) {
		grid.ItemConfidence = stats[col].codeFrac
	}
}

// collectStats computes content statistics for each column, skipping the
// header row.
func (b *Builder) collectStats(grid *model.Grid, headerRow int) []columnStats {
	stats := make([]columnStats, grid.ColCount())
	for c := range stats {
		var codes, units, nums int
		var totalLen int
		for r := 0; r < grid.RowCount(); r++ {
			if r == headerRow {
				continue
			}
			cell := grid.Cell(r, c)
			if cell == "" {
				continue
			}
			stats[c].nonEmpty++
			totalLen += len([]rune(cell))
			if _, ok := itemcode.Parse(cell); ok {
				codes++
			}
			if model.IsUnit(cell) {
				units++
			}
			if model.LooksNumeric(cell) {
				nums++
			}
		}
		if stats[c].nonEmpty > 0 {
			n := float64(stats[c].nonEmpty)
			stats[c].codeFrac = float64(codes) / n
			stats[c].unitFrac = float64(units) / n
			stats[c].numFrac = float64(nums) / n
			stats[c].avgLength = float64(totalLen) / n
		}
	}
	return stats
}

// inferMissing fills unmapped roles from content statistics. Columns already
// holding a role are never reconsidered; candidate scans go left to right so
// ties resolve deterministically.
func (b *Builder) inferMissing(roles model.RoleMap, stats []columnStats) {
	taken := func(col int) bool {
		for _, c := range roles {
			if c == col {
				return true
			}
		}
		return false
	}

	if _, ok := roles[model.RoleItem]; !ok {
		best, bestScore := -1, 0.0
		for c, st := range stats {
			if taken(c) || st.nonEmpty == 0 {
				continue
			}
			if st.codeFrac >= b.config.MinItemColumnScore && st.codeFrac > bestScore {
				best, bestScore = c, st.codeFrac
			}
		}
		if best >= 0 {
			roles[model.RoleItem] = best
		}
	}

	if _, ok := roles[model.RoleUnit]; !ok {
		best, bestScore := -1, 0.0
		for c, st := range stats {
			if taken(c) || st.nonEmpty == 0 {
				continue
			}
			if st.unitFrac >= b.config.MinUnitColumnScore && st.unitFrac > bestScore {
				best, bestScore = c, st.unitFrac
			}
		}
		if best >= 0 {
			roles[model.RoleUnit] = best
		}
	}

	if _, ok := roles[model.RoleQuantity]; !ok {
		// Quantity sits immediately right of the unit column in almost every
		// planilha layout; prefer that col, then fall back to the leftmost
		// numeric column that is not code-shaped.
		unitCol, hasUnit := roles[model.RoleUnit]
		best := -1
		for c, st := range stats {
			if taken(c) || st.nonEmpty == 0 {
				continue
			}
			if st.numFrac < b.config.MinQuantityColumnScore {
				continue
			}
			if hasUnit && c == unitCol+1 {
				best = c
				break
			}
			if best < 0 {
				best = c
			}
		}
		if best >= 0 {
			roles[model.RoleQuantity] = best
		}
	}

	if _, ok := roles[model.RoleDescription]; !ok {
		best, bestLen := -1, 0.0
		for c, st := range stats {
			if taken(c) || st.nonEmpty == 0 {
				continue
			}
			if st.avgLength > bestLen {
				best, bestLen = c, st.avgLength
			}
		}
		if best >= 0 {
			roles[model.RoleDescription] = best
		}
	}
}

// validate demotes roles whose column statistics contradict the assignment:
// an "item" column that mostly holds non-codes, a "unit" column outside the
// vocabulary, a "quantity" column that is not numeric. Header labels lie on
// broken scans; the body is the better witness.
func (b *Builder) validate(roles model.RoleMap, stats []columnStats) {
	if col, ok := roles[model.RoleItem]; ok {
		if col >= len(stats) || stats[col].nonEmpty == 0 || stats[col].codeFrac < b.config.DemoteScoreFloor {
			delete(roles, model.RoleItem)
		}
	}
	if col, ok := roles[model.RoleUnit]; ok {
		if col >= len(stats) || stats[col].nonEmpty == 0 || stats[col].unitFrac < b.config.DemoteScoreFloor {
			delete(roles, model.RoleUnit)
		}
	}
	if col, ok := roles[model.RoleQuantity]; ok {
		if col >= len(stats) || stats[col].nonEmpty == 0 || stats[col].numFrac < b.config.DemoteScoreFloor {
			delete(roles, model.RoleQuantity)
		}
	}
	if col, ok := roles[model.RoleDescription]; ok {
		if col >= len(stats) || stats[col].nonEmpty == 0 {
			delete(roles, model.RoleDescription)
		}
	}
}
