package model

import (
	"sort"
	"strconv"
	"strings"
)

// Role classifies what a grid column holds.
type Role int

const (
	RoleItem Role = iota
	RoleDescription
	RoleUnit
	RoleQuantity
	RoleOther
)

// String returns the role name used in signatures and debug output.
func (r Role) String() string {
	switch r {
	case RoleItem:
		return "item"
	case RoleDescription:
		return "description"
	case RoleUnit:
		return "unit"
	case RoleQuantity:
		return "quantity"
	default:
		return "other"
	}
}

// RoleMap assigns at most one column index to each role.
type RoleMap map[Role]int

// Column returns the column index for a role and whether it is assigned.
func (m RoleMap) Column(r Role) (int, bool) {
	c, ok := m[r]
	return c, ok
}

// Clone returns an independent copy of the role map.
func (m RoleMap) Clone() RoleMap {
	out := make(RoleMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Grid is a rectangular matrix of string cells plus the inferred column
// roles. It is built once per extraction attempt, consumed by the row
// interpreter, and discarded.
type Grid struct {
	Cells [][]string
	Roles RoleMap

	// HeaderRow is the detected header row index, -1 when none was found.
	HeaderRow int

	// HeaderLabels holds the normalized header cell texts when a header row
	// was detected; used for the structural signature.
	HeaderLabels []string

	// ItemConfidence is the confidence (0-1) that the item-role column
	// really holds item codes; feeds the composite attempt score.
	ItemConfidence float64

	// Page is the 1-based page the grid came from, 0 when unknown.
	Page int
}

// NewGrid creates an empty grid with no role assignments.
func NewGrid() *Grid {
	return &Grid{Roles: RoleMap{}, HeaderRow: -1}
}

// RowCount returns the number of rows.
func (g *Grid) RowCount() int {
	return len(g.Cells)
}

// ColCount returns the number of columns in the first row. Grids are always
// rectangular after construction.
func (g *Grid) ColCount() int {
	if len(g.Cells) == 0 {
		return 0
	}
	return len(g.Cells[0])
}

// Cell returns the trimmed cell text at (row, col), or "" when out of range.
// Out-of-range access is routine for attempts with missing roles.
func (g *Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g.Cells) {
		return ""
	}
	if col < 0 || col >= len(g.Cells[row]) {
		return ""
	}
	return strings.TrimSpace(g.Cells[row][col])
}

// RoleCell returns the cell text in the role's column for the given row, or
// "" when the role is unassigned. Downstream stages treat absent roles as
// always-empty fields.
func (g *Grid) RoleCell(row int, role Role) string {
	col, ok := g.Roles.Column(role)
	if !ok {
		return ""
	}
	return g.Cell(row, col)
}

// Signature returns the structural signature of the grid: the sorted
// role-to-column layout plus any detected header labels. Two tables with the
// same signature are treated as one logical segment continuing across pages.
func (g *Grid) Signature() string {
	parts := make([]string, 0, len(g.Roles)+1)
	for role, col := range g.Roles {
		parts = append(parts, role.String()+":"+strconv.Itoa(col))
	}
	sort.Strings(parts)
	if len(g.HeaderLabels) > 0 {
		parts = append(parts, strings.Join(g.HeaderLabels, "|"))
	}
	return strings.Join(parts, ";")
}

