package rowscan

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/tsawler/tally/itemcode"
	"github.com/tsawler/tally/model"
)

// Interpreter turns recovered grids into records. It is stateless apart
// from configuration; all per-attempt state lives in the Carry.
type Interpreter struct {
	config Config
}

// NewInterpreter creates an interpreter with default configuration.
func NewInterpreter() *Interpreter {
	return &Interpreter{config: DefaultConfig()}
}

// Configure sets the interpreter configuration.
func (it *Interpreter) Configure(config Config) {
	it.config = config
}

// rowView is one grid row seen through the column-role map.
type rowView struct {
	joined string
	item   string
	desc   string
	unit   string // normalized, "" when absent or out of vocabulary
	qty    decimal.NullDecimal
}

// Interpret scans the grid and appends emitted records to out, returning
// the extended slice. The carry threads continuation state across calls, so
// multi-page attempts pass the same carry for every page. Records receive
// the grid's page number and the given source tag.
func (it *Interpreter) Interpret(grid *model.Grid, src model.Source, carry *Carry, out []model.Record) []model.Record {
	if grid == nil {
		return out
	}

	for r := 0; r < grid.RowCount(); r++ {
		if r == grid.HeaderRow {
			continue
		}

		row := it.view(grid, r)
		if row.joined == "" {
			continue
		}
		if isNoise(row.joined) {
			// Dropped without touching carry state, including label age.
			continue
		}

		code, hasCode := it.rowCode(grid, &row)
		switch {
		case hasCode && it.isSectionHeader(code, row):
			carry.setLabel(model.Fold(row.desc))
		case hasCode:
			out = it.emit(code, row, grid.Page, src, carry, out)
			carry.age()
		default:
			out = it.continuation(row, carry, out)
			carry.age()
		}
	}
	return out
}

// view extracts the role cells for one row. When the grid has no
// description role the longest roleless cell stands in, so attempts with
// partial role maps still yield usable text.
func (it *Interpreter) view(grid *model.Grid, r int) rowView {
	var parts []string
	for c := 0; c < grid.ColCount(); c++ {
		if cell := grid.Cell(r, c); cell != "" {
			parts = append(parts, cell)
		}
	}

	row := rowView{
		joined: model.NormalizeSpace(strings.Join(parts, " ")),
		item:   grid.RoleCell(r, model.RoleItem),
		desc:   grid.RoleCell(r, model.RoleDescription),
		unit:   model.NormalizeUnit(grid.RoleCell(r, model.RoleUnit)),
		qty:    model.ParseQuantity(grid.RoleCell(r, model.RoleQuantity)),
	}

	if row.desc == "" {
		if _, ok := grid.Roles.Column(model.RoleDescription); !ok {
			row.desc = it.longestRolelessCell(grid, r)
		}
	}
	return row
}

// longestRolelessCell returns the longest cell in a column with no role.
func (it *Interpreter) longestRolelessCell(grid *model.Grid, r int) string {
	assigned := make(map[int]bool, len(grid.Roles))
	for _, col := range grid.Roles {
		assigned[col] = true
	}
	best := ""
	for c := 0; c < grid.ColCount(); c++ {
		if assigned[c] {
			continue
		}
		if cell := grid.Cell(r, c); len(cell) > len(best) {
			best = cell
		}
	}
	return best
}

// rowCode resolves the row's item code. The item cell is authoritative;
// when the grid has no item column the code may sit at the head of the
// description cell instead.
func (it *Interpreter) rowCode(grid *model.Grid, row *rowView) (itemcode.Code, bool) {
	if code, ok := itemcode.Parse(row.item); ok {
		return code, true
	}
	if row.item != "" {
		return itemcode.Code{}, false
	}
	if _, hasItemCol := grid.Roles.Column(model.RoleItem); hasItemCol {
		return itemcode.Code{}, false
	}

	fields := strings.Fields(row.desc)
	if len(fields) < 2 {
		return itemcode.Code{}, false
	}
	code, ok := itemcode.Parse(fields[0])
	if !ok {
		return itemcode.Code{}, false
	}
	row.desc = strings.Join(fields[1:], " ")
	return code, true
}

// isSectionHeader reports whether a coded row is a group header: a bare
// top-level number with a short all-caps label and no unit or quantity.
func (it *Interpreter) isSectionHeader(code itemcode.Code, row rowView) bool {
	if code.Depth() != 1 || row.unit != "" || row.qty.Valid {
		return false
	}
	if row.desc == "" || len([]rune(row.desc)) > it.config.SectionLabelMaxLen {
		return false
	}
	for _, r := range row.desc {
		if unicode.IsLower(r) {
			return false
		}
	}
	return true
}

// emit creates a record for a coded row, attaching any pending fragments,
// and runs hidden-item recovery over the resulting description.
func (it *Interpreter) emit(code itemcode.Code, row rowView, page int, src model.Source, carry *Carry, out []model.Record) []model.Record {
	desc := row.desc
	if len(carry.pendingDescription) > 0 {
		fragments := strings.Join(carry.pendingDescription, " ")
		if desc == "" {
			desc = fragments
		} else {
			desc = fragments + " " + desc
		}
	}

	rec := model.Record{
		Code:        code,
		Description: model.NormalizeSpace(desc),
		Unit:        row.unit,
		Quantity:    row.qty,
		Page:        page,
		Source:      src,
	}
	if rec.Unit == "" {
		rec.Unit = carry.pendingUnit
	}
	if !rec.Quantity.Valid {
		rec.Quantity = carry.pendingQuantity
	}
	carry.clearPending()

	out = append(out, rec)
	carry.lastIndex = len(out) - 1
	return it.recoverHidden(carry, out)
}

// continuation handles rows without a parseable code: description
// continuations, unit/quantity backfill for the last record, or pending
// fragment buffers when the last record is already complete. A description
// extended by a continuation is rescanned for swallowed records, since the
// append may push it past the hidden-item length gate.
func (it *Interpreter) continuation(row rowView, carry *Carry, out []model.Record) []model.Record {
	hasField := row.unit != "" || row.qty.Valid

	if carry.lastIndex < 0 || carry.lastIndex >= len(out) {
		if row.desc != "" {
			carry.pendingDescription = append(carry.pendingDescription, row.desc)
		}
		if hasField {
			carry.pendingUnit = row.unit
			carry.pendingQuantity = row.qty
		}
		return out
	}

	last := &out[carry.lastIndex]
	needUnit := last.Unit == ""
	needQty := !last.Quantity.Valid

	switch {
	case hasField && (needUnit || needQty):
		if row.unit != "" && needUnit {
			last.Unit = row.unit
		}
		if row.qty.Valid && needQty {
			last.Quantity = row.qty
		}
		if row.desc != "" {
			appendDescription(last, row.desc)
			out = it.recoverHidden(carry, out)
		}
	case hasField:
		// Last record is already fielded; this unit+quantity pair belongs
		// to the next coded row.
		carry.pendingUnit = row.unit
		carry.pendingQuantity = row.qty
		if row.desc != "" {
			carry.pendingDescription = append(carry.pendingDescription, row.desc)
		}
	case row.desc != "":
		appendDescription(last, row.desc)
		out = it.recoverHidden(carry, out)
	}
	return out
}

// appendDescription extends a record's description with a continuation
// fragment.
func appendDescription(rec *model.Record, fragment string) {
	if rec.Description == "" {
		rec.Description = fragment
		return
	}
	rec.Description = rec.Description + " " + fragment
}
