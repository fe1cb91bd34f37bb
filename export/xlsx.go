package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/tsawler/tally/model"
)

var headers = []string{"Item", "Descrição", "Unid", "Quant", "Segmento", "Página", "Origem"}

// XLSX renders the records as an XLSX workbook and returns its bytes.
// Quantities are written as numbers so spreadsheet formulas work on them.
func XLSX(records []model.Record) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Planilha"

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for i := range records {
		r := &records[i]
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, r.DisplayCode())
		write(2, r.Description)
		write(3, r.Unit)
		if r.Quantity.Valid {
			qty, _ := r.Quantity.Decimal.Float64()
			write(4, qty)
		}
		write(5, r.Segment)
		if r.Page > 0 {
			write(6, r.Page)
		}
		write(7, string(r.Source))
	}

	_ = f.SetColWidth(sheet, "A", "A", 12)
	_ = f.SetColWidth(sheet, "B", "B", 60)
	_ = f.SetColWidth(sheet, "C", "D", 10)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
