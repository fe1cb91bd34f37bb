package rowscan

import (
	"testing"

	"github.com/tsawler/tally/model"
)

// itemGrid builds a 4-column grid with the standard role layout.
func itemGrid(rows [][]string) *model.Grid {
	g := model.NewGrid()
	g.Cells = rows
	g.Page = 1
	g.Roles = model.RoleMap{
		model.RoleItem:        0,
		model.RoleDescription: 1,
		model.RoleUnit:        2,
		model.RoleQuantity:    3,
	}
	return g
}

func TestInterpreter_CodedRows(t *testing.T) {
	g := itemGrid([][]string{
		{"1.1", "INSTALL WIDGET", "UN", "10"},
		{"1.2", "REMOVE WIDGET", "M2", "5,50"},
	})

	it := NewInterpreter()
	out := it.Interpret(g, model.SourceTokens, NewCarry(), nil)

	if len(out) != 2 {
		t.Fatalf("got %d records, want 2", len(out))
	}
	r0, r1 := out[0], out[1]
	if r0.BareCode() != "1.1" || r0.Description != "INSTALL WIDGET" || r0.Unit != "UN" {
		t.Errorf("record 0 = %+v", r0)
	}
	if !r0.Quantity.Valid || r0.Quantity.Decimal.String() != "10" {
		t.Errorf("record 0 quantity = %v, want 10", r0.Quantity)
	}
	if r1.BareCode() != "1.2" || r1.Unit != "M2" {
		t.Errorf("record 1 = %+v", r1)
	}
	if !r1.Quantity.Valid || r1.Quantity.Decimal.String() != "5.5" {
		t.Errorf("record 1 quantity = %v, want 5.5 (comma decimal normalized)", r1.Quantity)
	}
	if r0.Page != 1 || r0.Source != model.SourceTokens {
		t.Errorf("record 0 page/source = %d/%s", r0.Page, r0.Source)
	}
}

func TestInterpreter_ContinuationBackfill(t *testing.T) {
	g := itemGrid([][]string{
		{"2.1", "FORNECIMENTO E ASSENTAMENTO", "", ""},
		{"", "DE PISO CERAMICO", "M2", "45,00"},
		{"", "INCLUSIVE REJUNTE", "", ""},
	})

	it := NewInterpreter()
	out := it.Interpret(g, model.SourceStructured, NewCarry(), nil)

	if len(out) != 1 {
		t.Fatalf("got %d records, want 1", len(out))
	}
	r := out[0]
	want := "FORNECIMENTO E ASSENTAMENTO DE PISO CERAMICO INCLUSIVE REJUNTE"
	if r.Description != want {
		t.Errorf("description = %q, want %q", r.Description, want)
	}
	if r.Unit != "M2" {
		t.Errorf("unit = %q, want M2 (backfilled)", r.Unit)
	}
	if !r.Quantity.Valid || r.Quantity.Decimal.String() != "45" {
		t.Errorf("quantity = %v, want 45 (backfilled)", r.Quantity)
	}
}

func TestInterpreter_PendingFragments(t *testing.T) {
	g := itemGrid([][]string{
		{"3.1", "COMPLETE ITEM", "UN", "2"},
		{"", "", "M3", "12,00"}, // belongs to the next coded row
		{"3.2", "CONCRETO USINADO", "", ""},
	})

	it := NewInterpreter()
	out := it.Interpret(g, model.SourceStructured, NewCarry(), nil)

	if len(out) != 2 {
		t.Fatalf("got %d records, want 2", len(out))
	}
	r := out[1]
	if r.Unit != "M3" {
		t.Errorf("unit = %q, want M3 (from pending buffer)", r.Unit)
	}
	if !r.Quantity.Valid || r.Quantity.Decimal.String() != "12" {
		t.Errorf("quantity = %v, want 12 (from pending buffer)", r.Quantity)
	}
	if first := out[0]; first.Unit != "UN" {
		t.Errorf("complete record disturbed: %+v", first)
	}
}

func TestInterpreter_NoiseDiscarded(t *testing.T) {
	g := itemGrid([][]string{
		{"1.1", "SERVICO UM", "UN", "1"},
		{"", "Emitido em 01/02/2024 10:31", "", ""},
		{"", "12.345.678/0001-90", "", ""},
		{"", "Página 3 de 12", "", ""},
		{"", "CONTINUACAO REAL", "", ""},
	})

	it := NewInterpreter()
	out := it.Interpret(g, model.SourceStructured, NewCarry(), nil)

	if len(out) != 1 {
		t.Fatalf("got %d records, want 1", len(out))
	}
	want := "SERVICO UM CONTINUACAO REAL"
	if out[0].Description != want {
		t.Errorf("description = %q, want %q (noise rows must not touch carry)", out[0].Description, want)
	}
}

func TestInterpreter_SectionHeaderLabel(t *testing.T) {
	g := itemGrid([][]string{
		{"3", "SUPERESTRUTURA", "", ""},
		{"3.1", "FORMA DE MADEIRA", "M2", "100"},
	})

	it := NewInterpreter()
	carry := NewCarry()
	out := it.Interpret(g, model.SourceStructured, carry, nil)

	if len(out) != 1 {
		t.Fatalf("got %d records, want 1 (section header must not emit)", len(out))
	}
	if got := carry.Label(3); got != "SUPERESTRUTURA" {
		t.Errorf("carry label = %q, want SUPERESTRUTURA", got)
	}
}

func TestInterpreter_SectionLabelAges(t *testing.T) {
	g := itemGrid([][]string{
		{"4", "INSTALACOES", "", ""},
		{"4.1", "PONTO DE LUZ", "UN", "10"},
		{"4.2", "PONTO DE TOMADA", "UN", "20"},
		{"4.3", "QUADRO GERAL", "UN", "1"},
		{"4.4", "DISJUNTOR", "UN", "8"},
	})

	it := NewInterpreter()
	carry := NewCarry()
	it.Interpret(g, model.SourceStructured, carry, nil)

	if got := carry.Label(3); got != "" {
		t.Errorf("label still visible after 4 rows: %q", got)
	}
	if got := carry.Label(10); got != "INSTALACOES" {
		t.Errorf("label with wide lookback = %q, want INSTALACOES", got)
	}
}

func TestInterpreter_HiddenItem(t *testing.T) {
	long := "EXECUCAO DE CONTRAPISO EM ARGAMASSA TRACO 1:4 COM ESPESSURA DE 3CM 5.2 CHAPISCO APLICADO EM ALVENARIA M2 88,00"
	g := itemGrid([][]string{
		{"5.1", long, "M2", "120,00"},
	})

	it := NewInterpreter()
	out := it.Interpret(g, model.SourceTokens, NewCarry(), nil)

	if len(out) != 2 {
		t.Fatalf("got %d records, want 2 (hidden item split)", len(out))
	}
	head, hidden := out[0], out[1]
	if head.BareCode() != "5.1" {
		t.Errorf("head code = %q", head.BareCode())
	}
	if want := "EXECUCAO DE CONTRAPISO EM ARGAMASSA TRACO 1:4 COM ESPESSURA DE 3CM"; head.Description != want {
		t.Errorf("head description = %q, want %q", head.Description, want)
	}
	if hidden.BareCode() != "5.2" || hidden.Unit != "M2" {
		t.Errorf("hidden record = %+v", hidden)
	}
	if hidden.Description != "CHAPISCO APLICADO EM ALVENARIA" {
		t.Errorf("hidden description = %q", hidden.Description)
	}
	if !hidden.Quantity.Valid || hidden.Quantity.Decimal.String() != "88" {
		t.Errorf("hidden quantity = %v, want 88", hidden.Quantity)
	}
	if !hidden.AutoDetected {
		t.Error("hidden record not flagged AutoDetected")
	}
	if head.AutoDetected {
		t.Error("head record wrongly flagged AutoDetected")
	}
}

func TestInterpreter_HiddenItemAfterContinuation(t *testing.T) {
	// The swallowed record only crosses the length gate after a
	// continuation row extends the description.
	g := itemGrid([][]string{
		{"5.1", "EXECUCAO DE CONTRAPISO EM ARGAMASSA", "M2", "120,00"},
		{"", "TRACO 1:4 COM ESPESSURA DE 3CM 5.2 CHAPISCO APLICADO EM ALVENARIA M2 88,00", "", ""},
	})

	it := NewInterpreter()
	out := it.Interpret(g, model.SourceTokens, NewCarry(), nil)

	if len(out) != 2 {
		t.Fatalf("got %d records, want 2 (hidden item split)", len(out))
	}
	head, hidden := out[0], out[1]
	if want := "EXECUCAO DE CONTRAPISO EM ARGAMASSA TRACO 1:4 COM ESPESSURA DE 3CM"; head.Description != want {
		t.Errorf("head description = %q, want %q", head.Description, want)
	}
	if hidden.BareCode() != "5.2" || hidden.Unit != "M2" || !hidden.AutoDetected {
		t.Errorf("hidden record = %+v", hidden)
	}
	if !hidden.Quantity.Valid || hidden.Quantity.Decimal.String() != "88" {
		t.Errorf("hidden quantity = %v, want 88", hidden.Quantity)
	}
}

func TestInterpreter_CodeInDescriptionColumn(t *testing.T) {
	g := model.NewGrid()
	g.Cells = [][]string{
		{"6.1 PINTURA LATEX DUAS DEMAOS", "M2", "300,00"},
	}
	g.Roles = model.RoleMap{
		model.RoleDescription: 0,
		model.RoleUnit:        1,
		model.RoleQuantity:    2,
	}

	it := NewInterpreter()
	out := it.Interpret(g, model.SourceTokens, NewCarry(), nil)

	if len(out) != 1 {
		t.Fatalf("got %d records, want 1", len(out))
	}
	if out[0].BareCode() != "6.1" || out[0].Description != "PINTURA LATEX DUAS DEMAOS" {
		t.Errorf("record = %+v", out[0])
	}
}

func TestInterpreter_CarryAcrossGrids(t *testing.T) {
	page1 := itemGrid([][]string{
		{"7.1", "ALAMBRADO EM TELA", "", ""},
	})
	page2 := itemGrid([][]string{
		{"", "GALVANIZADA H=2M", "M", "150,00"},
	})
	page2.Page = 2

	it := NewInterpreter()
	carry := NewCarry()
	out := it.Interpret(page1, model.SourceStructured, carry, nil)
	out = it.Interpret(page2, model.SourceStructured, carry, out)

	if len(out) != 1 {
		t.Fatalf("got %d records, want 1", len(out))
	}
	r := out[0]
	if r.Description != "ALAMBRADO EM TELA GALVANIZADA H=2M" {
		t.Errorf("description = %q", r.Description)
	}
	if r.Unit != "M" || !r.Quantity.Valid {
		t.Errorf("unit/quantity not carried across grids: %+v", r)
	}
}

func TestInterpreter_EmptyGrid(t *testing.T) {
	it := NewInterpreter()
	out := it.Interpret(model.NewGrid(), model.SourceTokens, NewCarry(), nil)
	if len(out) != 0 {
		t.Errorf("empty grid produced %d records", len(out))
	}
}
