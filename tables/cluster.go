package tables

import (
	"math"
	"sort"
	"strings"

	"github.com/tsawler/tally/model"
)

// clusterRows groups tokens into visual rows. Tokens whose vertical centers
// fall within the row tolerance of the row's running mean belong to the same
// row. The tolerance derives from the median token height so that both
// 300dpi scans and PDF point coordinates cluster sensibly.
func (b *Builder) clusterRows(tokens []model.Token) [][]model.Token {
	sorted := make([]model.Token, len(tokens))
	copy(sorted, tokens)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BBox.Center().Y < sorted[j].BBox.Center().Y
	})

	heights := make([]float64, len(sorted))
	for i, tok := range sorted {
		heights[i] = tok.BBox.Height
	}
	tol := math.Max(b.config.RowToleranceMin, b.config.RowToleranceFactor*median(heights))

	var rows [][]model.Token
	var current []model.Token
	var sum float64

	for _, tok := range sorted {
		yc := tok.BBox.Center().Y
		if len(current) > 0 && math.Abs(yc-sum/float64(len(current))) > tol {
			rows = append(rows, current)
			current = nil
			sum = 0
		}
		current = append(current, tok)
		sum += yc
	}
	if len(current) > 0 {
		rows = append(rows, current)
	}
	return rows
}

// mergePhrases joins adjacent word tokens within one row into phrase tokens
// when the horizontal gap between them is no wider than a space. Without
// this pass every word of a multi-word description would claim its own
// column; intra-cell word gaps are far smaller than inter-column gaps, so a
// gap threshold derived from the median token height (a proxy for font
// size) separates the two cleanly.
func (b *Builder) mergePhrases(row []model.Token, medianHeight float64) []model.Token {
	if len(row) <= 1 {
		return row
	}
	sort.SliceStable(row, func(i, j int) bool {
		return row[i].BBox.Left() < row[j].BBox.Left()
	})
	gap := math.Max(b.config.PhraseGapMin, b.config.PhraseGapFactor*medianHeight)

	merged := make([]model.Token, 0, len(row))
	current := row[0]
	for _, tok := range row[1:] {
		if tok.BBox.Left()-current.BBox.Right() <= gap {
			current = joinTokens(current, tok)
			continue
		}
		merged = append(merged, current)
		current = tok
	}
	return append(merged, current)
}

// joinTokens concatenates two horizontally adjacent tokens into one, taking
// the union bounding box and the lower confidence.
func joinTokens(a, c model.Token) model.Token {
	left := math.Min(a.BBox.Left(), c.BBox.Left())
	right := math.Max(a.BBox.Right(), c.BBox.Right())
	y := math.Min(a.BBox.Y, c.BBox.Y)
	bottom := math.Max(a.BBox.Y+a.BBox.Height, c.BBox.Y+c.BBox.Height)
	conf := a.Confidence
	if c.Confidence < conf {
		conf = c.Confidence
	}
	return model.Token{
		Text:       strings.TrimSpace(a.Text + " " + c.Text),
		BBox:       model.NewBBox(left, y, right-left, bottom-y),
		Confidence: conf,
	}
}

// columnCenters clusters the horizontal centers of the phrase tokens into a
// sorted list of column center positions.
func (b *Builder) columnCenters(tokens []model.Token) []float64 {
	if len(tokens) == 0 {
		return nil
	}
	widths := make([]float64, len(tokens))
	xs := make([]float64, len(tokens))
	for i, tok := range tokens {
		widths[i] = tok.BBox.Width
		xs[i] = tok.BBox.Center().X
	}
	sort.Float64s(xs)
	tol := math.Max(b.config.ColToleranceMin, b.config.ColToleranceFactor*median(widths))

	var centers []float64
	var sum float64
	var n int

	for _, x := range xs {
		if n > 0 && x-sum/float64(n) > tol {
			centers = append(centers, sum/float64(n))
			sum, n = 0, 0
		}
		sum += x
		n++
	}
	if n > 0 {
		centers = append(centers, sum/float64(n))
	}
	return centers
}

// fillCells assigns each token of each row to its nearest column center.
// Multiple tokens landing in the same cell are joined with spaces in
// horizontal order.
func (b *Builder) fillCells(rows [][]model.Token, centers []float64) [][]string {
	cells := make([][]string, len(rows))
	for r, row := range rows {
		sort.SliceStable(row, func(i, j int) bool {
			return row[i].BBox.Center().X < row[j].BBox.Center().X
		})

		parts := make([][]string, len(centers))
		for _, tok := range row {
			c := nearestCenter(centers, tok.BBox.Center().X)
			parts[c] = append(parts[c], tok.Text)
		}

		cells[r] = make([]string, len(centers))
		for c, p := range parts {
			cells[r][c] = strings.Join(p, " ")
		}
	}
	return cells
}

// nearestCenter returns the index of the closest center; centers is sorted.
func nearestCenter(centers []float64, x float64) int {
	i := sort.SearchFloat64s(centers, x)
	if i == 0 {
		return 0
	}
	if i == len(centers) {
		return len(centers) - 1
	}
	if x-centers[i-1] <= centers[i]-x {
		return i - 1
	}
	return i
}

// median returns the median of values; 0 for empty input.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
