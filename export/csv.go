package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/tsawler/tally/model"
)

// CSV writes the records to w with a header row. Quantities are rendered
// with a decimal point; consumers localize on import.
func CSV(w io.Writer, records []model.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := range records {
		r := &records[i]
		qty := ""
		if r.Quantity.Valid {
			qty = r.Quantity.Decimal.String()
		}
		page := ""
		if r.Page > 0 {
			page = strconv.Itoa(r.Page)
		}
		row := []string{
			r.DisplayCode(),
			r.Description,
			r.Unit,
			qty,
			strconv.Itoa(r.Segment),
			page,
			string(r.Source),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
