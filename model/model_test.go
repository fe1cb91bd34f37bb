package model

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tsawler/tally/itemcode"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		input string
		want  string
		valid bool
	}{
		{"10", "10", true},
		{"5,50", "5.5", true},
		{"1.234,56", "1234.56", true},
		{"1.234.567", "1234567", true},
		{"12.5", "12.5", true},
		{"10,00UN", "10", true},
		{"", "", false},
		{"UN", "", false},
		{"abc", "", false},
		{"1,2,3", "", false},
	}

	for _, tt := range tests {
		got := ParseQuantity(tt.input)
		if got.Valid != tt.valid {
			t.Errorf("ParseQuantity(%q) valid = %v, want %v", tt.input, got.Valid, tt.valid)
			continue
		}
		if got.Valid && got.Decimal.String() != tt.want {
			t.Errorf("ParseQuantity(%q) = %s, want %s", tt.input, got.Decimal, tt.want)
		}
	}
}

func TestFold(t *testing.T) {
	tests := []struct{ input, want string }{
		{"Descrição", "DESCRICAO"},
		{"  quantidade ", "QUANTIDADE"},
		{"Unidade", "UNIDADE"},
		{"ITEM", "ITEM"},
	}
	for _, tt := range tests {
		if got := Fold(tt.input); got != tt.want {
			t.Errorf("Fold(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeUnit(t *testing.T) {
	tests := []struct{ input, want string }{
		{"UN", "UN"},
		{"Unid.", "UN"},
		{"und", "UN"},
		{"m²", "M2"},
		{"M2", "M2"},
		{"m³", "M3"},
		{"pç", "PC"},
		{"verba", "VB"},
		{"Saco", "SC"},
		{"CONCRETO", ""},
		{"123", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeUnit(tt.input); got != tt.want {
			t.Errorf("NormalizeUnit(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRecord_DisplayCode(t *testing.T) {
	r := Record{Code: itemcode.MustParse("1.4")}
	if got := r.DisplayCode(); got != "1.4" {
		t.Errorf("DisplayCode() = %q, want 1.4", got)
	}
	r.Prefix = "S2"
	if got := r.DisplayCode(); got != "S2-1.4" {
		t.Errorf("DisplayCode() = %q, want S2-1.4", got)
	}
	if got := r.BareCode(); got != "1.4" {
		t.Errorf("BareCode() = %q, want 1.4", got)
	}
}

func TestRecord_IsComplete(t *testing.T) {
	r := Record{
		Code:        itemcode.MustParse("1.1"),
		Description: "INSTALL WIDGET",
		Unit:        "UN",
	}
	if r.IsComplete() {
		t.Error("record without quantity reported complete")
	}
	r.SetQuantity(decimal.NewFromInt(10))
	if !r.IsComplete() {
		t.Error("complete record reported incomplete")
	}
}

func TestQuantitySimilar(t *testing.T) {
	mk := func(s string) *Record {
		r := &Record{}
		d, _ := decimal.NewFromString(s)
		r.SetQuantity(d)
		return r
	}

	if !QuantitySimilar(mk("100"), mk("100")) {
		t.Error("equal quantities not similar")
	}
	if !QuantitySimilar(mk("100"), mk("100.5")) {
		t.Error("0.5% apart not similar")
	}
	if QuantitySimilar(mk("100"), mk("110")) {
		t.Error("10% apart reported similar")
	}
	if QuantitySimilar(mk("100"), &Record{}) {
		t.Error("present vs missing quantity reported similar")
	}
	if !QuantitySimilar(&Record{}, &Record{}) {
		t.Error("two missing quantities not similar")
	}
}

func TestGrid_Signature_Deterministic(t *testing.T) {
	g := NewGrid()
	g.Cells = [][]string{{"1.1", "A", "UN", "10"}}
	g.Roles = RoleMap{RoleItem: 0, RoleDescription: 1, RoleUnit: 2, RoleQuantity: 3}
	g.HeaderLabels = []string{"ITEM", "DESCRICAO", "UND", "QUANT"}

	first := g.Signature()
	for i := 0; i < 10; i++ {
		if got := g.Signature(); got != first {
			t.Fatalf("Signature() not deterministic: %q then %q", first, got)
		}
	}
	if first == "" {
		t.Error("Signature() empty for populated grid")
	}
}

func TestGrid_RoleCell(t *testing.T) {
	g := NewGrid()
	g.Cells = [][]string{{"1.1", " INSTALL ", "UN", "10"}}
	g.Roles = RoleMap{RoleItem: 0, RoleDescription: 1}

	if got := g.RoleCell(0, RoleDescription); got != "INSTALL" {
		t.Errorf("RoleCell(description) = %q, want INSTALL", got)
	}
	if got := g.RoleCell(0, RoleQuantity); got != "" {
		t.Errorf("RoleCell(unassigned) = %q, want empty", got)
	}
	if got := g.RoleCell(5, RoleItem); got != "" {
		t.Errorf("RoleCell(out of range) = %q, want empty", got)
	}
}

func TestSegment_ObserveOverlap(t *testing.T) {
	s := NewSegment(0, "sig", "")
	for _, c := range []string{"1.1", "1.2", "2.1"} {
		s.Observe(itemcode.MustParse(c))
	}
	if s.MaxCode.String() != "2.1" {
		t.Errorf("MaxCode = %q, want 2.1", s.MaxCode)
	}

	probe := []itemcode.Code{
		itemcode.MustParse("1.1"),
		itemcode.MustParse("1.2"),
		itemcode.MustParse("9.9"),
	}
	if got := s.Overlap(probe); got != 2 {
		t.Errorf("Overlap = %d, want 2", got)
	}
}
