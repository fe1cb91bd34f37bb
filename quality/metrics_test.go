package quality

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tsawler/tally/itemcode"
	"github.com/tsawler/tally/model"
)

func rec(code, desc, unit string, qty int64) model.Record {
	r := model.Record{Description: desc, Unit: unit}
	if code != "" {
		r.Code = itemcode.MustParse(code)
	}
	if qty > 0 {
		r.SetQuantity(decimal.NewFromInt(qty))
	}
	return r
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCompute_Empty(t *testing.T) {
	m := Compute(nil)
	if m.Records != 0 || m.ItemRatio != 0 || m.CompleteRatio != 0 {
		t.Errorf("Compute(nil) = %+v, want zero", m)
	}
	if got := Confidence(m, 1, true, true); got != 0 {
		t.Errorf("Confidence of empty set = %v, want 0", got)
	}
}

func TestCompute_Ratios(t *testing.T) {
	records := []model.Record{
		rec("1.1", "A", "UN", 10), // complete
		rec("1.2", "B", "", 5),    // no unit
		rec("", "C", "M2", 0),     // no code, no qty
		rec("1.3", "", "UN", 2),   // no description
	}

	m := Compute(records)
	if m.Records != 4 {
		t.Fatalf("Records = %d, want 4", m.Records)
	}
	if !approx(m.ItemRatio, 0.75) {
		t.Errorf("ItemRatio = %v, want 0.75", m.ItemRatio)
	}
	if !approx(m.UnitRatio, 0.75) {
		t.Errorf("UnitRatio = %v, want 0.75", m.UnitRatio)
	}
	if !approx(m.QtyRatio, 0.75) {
		t.Errorf("QtyRatio = %v, want 0.75", m.QtyRatio)
	}
	if !approx(m.CompleteRatio, 0.25) {
		t.Errorf("CompleteRatio = %v, want 0.25", m.CompleteRatio)
	}
}

func TestSequentialRatio(t *testing.T) {
	ordered := []model.Record{rec("1.1", "", "", 0), rec("1.2", "", "", 0), rec("2.1", "", "", 0)}
	if m := Compute(ordered); !approx(m.SequentialRatio, 1) {
		t.Errorf("ordered SequentialRatio = %v, want 1", m.SequentialRatio)
	}

	scrambled := []model.Record{rec("2.1", "", "", 0), rec("1.1", "", "", 0), rec("1.2", "", "", 0)}
	if m := Compute(scrambled); !approx(m.SequentialRatio, 0.5) {
		t.Errorf("scrambled SequentialRatio = %v, want 0.5", m.SequentialRatio)
	}
}

func TestSequentialRatio_SkipsRestartBoundary(t *testing.T) {
	records := []model.Record{
		rec("1.1", "", "", 0),
		rec("1.2", "", "", 0),
	}
	restart := rec("1.1", "", "", 0)
	restart.Prefix = "S2"
	records = append(records, restart)

	if m := Compute(records); !approx(m.SequentialRatio, 1) {
		t.Errorf("SequentialRatio = %v, want 1 (restart boundary skipped)", m.SequentialRatio)
	}
}

func TestConfidence_Weights(t *testing.T) {
	m := Metrics{
		Records:         10,
		SequentialRatio: 1,
		QtyRatio:        1,
		UnitRatio:       1,
	}
	if got := Confidence(m, 1, false, false); !approx(got, 0.9) {
		t.Errorf("Confidence = %v, want 0.9", got)
	}
	if got := Confidence(m, 1, true, true); !approx(got, 1.0) {
		t.Errorf("Confidence with bonuses = %v, want 1.0", got)
	}
	if got := Confidence(m, 0, false, false); !approx(got, 0.5) {
		t.Errorf("Confidence without item column = %v, want 0.5", got)
	}
}

func TestHierarchical(t *testing.T) {
	flat := []model.Record{rec("1.1", "", "", 0), rec("1.2", "", "", 0)}
	if Hierarchical(flat) {
		t.Error("flat numbering reported hierarchical")
	}

	nested := []model.Record{rec("1.1", "", "", 0), rec("1.1.1", "", "", 0)}
	if !Hierarchical(nested) {
		t.Error("nested numbering not reported hierarchical")
	}
}

func TestMetrics_Acceptable(t *testing.T) {
	records := []model.Record{
		rec("1.1", "A", "UN", 10),
		rec("1.2", "B", "UN", 5),
		rec("1.3", "C", "", 0),
	}
	m := Compute(records)

	if !m.Acceptable(0.5) {
		t.Errorf("Acceptable(0.5) = false for qty ratio %v", m.QtyRatio)
	}
	if m.Acceptable(0.9) {
		t.Errorf("Acceptable(0.9) = true for qty ratio %v", m.QtyRatio)
	}
	if (Metrics{}).Acceptable(0) {
		t.Error("empty metrics acceptable")
	}
}
