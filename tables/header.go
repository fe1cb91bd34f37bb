package tables

import (
	"strings"

	"github.com/tsawler/tally/model"
)

// headerKeywords maps folded header labels to the role the column under
// them holds. Price/total labels are recognized so the header row is found,
// but map to RoleOther: this engine does not extract monetary columns.
var headerKeywords = map[string]model.Role{
	"ITEM":          model.RoleItem,
	"CODIGO":        model.RoleItem,
	"COD":           model.RoleItem,
	"REF":           model.RoleItem,
	"DESCRICAO":     model.RoleDescription,
	"DISCRIMINACAO": model.RoleDescription,
	"ESPECIFICACAO": model.RoleDescription,
	"SERVICO":       model.RoleDescription,
	"SERVICOS":      model.RoleDescription,
	"DESCRIPTION":   model.RoleDescription,
	"UNIDADE":       model.RoleUnit,
	"UNID":          model.RoleUnit,
	"UND":           model.RoleUnit,
	"UN":            model.RoleUnit,
	"QUANTIDADE":    model.RoleQuantity,
	"QUANT":         model.RoleQuantity,
	"QTD":           model.RoleQuantity,
	"QTDE":          model.RoleQuantity,
	"QTY":           model.RoleQuantity,
	"PRECO":         model.RoleOther,
	"VALOR":         model.RoleOther,
	"TOTAL":         model.RoleOther,
	"UNITARIO":      model.RoleOther,
	"FONTE":         model.RoleOther,
	"BDI":           model.RoleOther,
}

// matchHeaderCell returns the role a header cell suggests. Cells often hold
// compounds ("PREÇO UNITÁRIO", "QUANT."); the first keyword hit wins, with
// non-other roles preferred over RoleOther.
func matchHeaderCell(cell string) (model.Role, bool) {
	folded := model.Fold(cell)
	folded = strings.Trim(folded, ".:;()")
	if folded == "" {
		return model.RoleOther, false
	}

	best := model.RoleOther
	found := false
	for _, word := range strings.FieldsFunc(folded, func(r rune) bool {
		return r == ' ' || r == '.' || r == '/' || r == ':'
	}) {
		role, ok := headerKeywords[word]
		if !ok {
			continue
		}
		if !found || (best == model.RoleOther && role != model.RoleOther) {
			best = role
			found = true
		}
	}
	return best, found
}

// detectHeader locates the header row by keyword density: the first row
// matching at least MinHeaderKeywords keywords wins. Returns the row index,
// the role suggested for each column, and the folded labels; index -1 when
// no header row qualifies.
func (b *Builder) detectHeader(grid *model.Grid) (int, map[int]model.Role, []string) {
	for r := 0; r < grid.RowCount(); r++ {
		hits := 0
		roles := make(map[int]model.Role)
		labels := make([]string, grid.ColCount())

		for c := 0; c < grid.ColCount(); c++ {
			cell := grid.Cell(r, c)
			labels[c] = model.Fold(cell)
			role, ok := matchHeaderCell(cell)
			if !ok {
				continue
			}
			hits++
			if role != model.RoleOther {
				if _, taken := roleTaken(roles, role); !taken {
					roles[c] = role
				}
			}
		}

		if hits >= b.config.MinHeaderKeywords {
			return r, roles, labels
		}
	}
	return -1, nil, nil
}

// roleTaken reports whether a role is already assigned to some column.
func roleTaken(roles map[int]model.Role, role model.Role) (int, bool) {
	for col, r := range roles {
		if r == role {
			return col, true
		}
	}
	return 0, false
}
