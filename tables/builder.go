package tables

import (
	"github.com/tsawler/tally/model"
)

// Builder recovers grids from either pre-delimited rows or positioned
// tokens. It is stateless apart from its configuration and safe to reuse
// across documents.
type Builder struct {
	config Config
}

// NewBuilder creates a builder with default configuration.
func NewBuilder() *Builder {
	return &Builder{config: DefaultConfig()}
}

// Configure sets the builder configuration.
func (b *Builder) Configure(config Config) {
	b.config = config
}

// FromRows builds a grid from rows that arrive already cell-delimited,
// padding ragged rows to the widest row. Returns an empty grid (no rows, no
// roles) for empty input; it never fails.
func (b *Builder) FromRows(rows [][]string, page int) *model.Grid {
	grid := model.NewGrid()
	grid.Page = page
	if len(rows) == 0 {
		return grid
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	if width == 0 {
		return grid
	}

	grid.Cells = make([][]string, len(rows))
	for i, row := range rows {
		padded := make([]string, width)
		copy(padded, row)
		grid.Cells[i] = padded
	}

	b.resolveRoles(grid)
	return grid
}

// FromTokens builds a grid from positioned text tokens by spatial
// clustering, then resolves column roles. Returns an empty grid for empty
// input; it never fails.
func (b *Builder) FromTokens(tokens []model.Token, page int) *model.Grid {
	grid := model.NewGrid()
	grid.Page = page
	if len(tokens) == 0 {
		return grid
	}

	heights := make([]float64, len(tokens))
	for i, tok := range tokens {
		heights[i] = tok.BBox.Height
	}
	medianHeight := median(heights)

	rows := b.clusterRows(tokens)
	phrases := make([]model.Token, 0, len(tokens))
	for i, row := range rows {
		rows[i] = b.mergePhrases(row, medianHeight)
		phrases = append(phrases, rows[i]...)
	}

	centers := b.columnCenters(phrases)
	if len(centers) == 0 {
		return grid
	}

	grid.Cells = b.fillCells(rows, centers)
	b.resolveRoles(grid)
	return grid
}
