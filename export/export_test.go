package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/tsawler/tally/itemcode"
	"github.com/tsawler/tally/model"
)

func sample() []model.Record {
	first := model.Record{
		Code:        itemcode.MustParse("1.1"),
		Description: "LIMPEZA DO TERRENO",
		Unit:        "M2",
		Quantity:    model.ParseQuantity("120,00"),
		Page:        1,
		Source:      model.SourceTokens,
	}
	second := model.Record{
		Code:        itemcode.MustParse("1.4"),
		Prefix:      "S2",
		Description: "ALVENARIA DE VEDACAO",
		Unit:        "M2",
		Quantity:    model.ParseQuantity("80,00"),
		Segment:     1,
		Source:      model.SourceStructured,
	}
	return []model.Record{first, second}
}

func TestXLSX_RoundTrip(t *testing.T) {
	data, err := XLSX(sample())
	if err != nil {
		t.Fatalf("XLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Planilha")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if rows[1][0] != "1.1" || rows[2][0] != "S2-1.4" {
		t.Errorf("code column = %q, %q", rows[1][0], rows[2][0])
	}
	if rows[1][3] != "120" {
		t.Errorf("quantity cell = %q, want numeric 120", rows[1][3])
	}
}

func TestCSV_WritesAllColumns(t *testing.T) {
	var buf bytes.Buffer
	if err := CSV(&buf, sample()); err != nil {
		t.Fatalf("CSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2", len(lines))
	}
	if !strings.HasPrefix(lines[1], "1.1,LIMPEZA DO TERRENO,M2,120,") {
		t.Errorf("first row = %q", lines[1])
	}
	if !strings.Contains(lines[2], "S2-1.4") {
		t.Errorf("second row should carry the prefixed code: %q", lines[2])
	}
}

func TestCSV_EmptyList(t *testing.T) {
	var buf bytes.Buffer
	if err := CSV(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(buf.String(), "\n"); got != 1 {
		t.Errorf("empty list wrote %d lines, want header only", got)
	}
}
