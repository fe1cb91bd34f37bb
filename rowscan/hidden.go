package rowscan

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/tsawler/tally/itemcode"
	"github.com/tsawler/tally/model"
)

// hiddenItem is a second record recovered from inside an over-long
// description cell.
type hiddenItem struct {
	code itemcode.Code
	desc string
	unit string
	qty  decimal.NullDecimal
}

// recoverHidden checks the last emitted record for a swallowed second
// record: a mid-text item code followed by a unit+quantity tail means two
// source rows were merged into one cell. When found, the description is
// split at the embedded code, the first record keeps the head, and a new
// auto-detected record is emitted for the tail.
func (it *Interpreter) recoverHidden(carry *Carry, out []model.Record) []model.Record {
	for {
		last := &out[carry.lastIndex]
		if len([]rune(last.Description)) < it.config.HiddenMinDescLen {
			return out
		}
		head, hidden, ok := it.splitHidden(last.Description)
		if !ok {
			return out
		}

		last.Description = head
		rec := model.Record{
			Code:         hidden.code,
			Description:  hidden.desc,
			Unit:         hidden.unit,
			Quantity:     hidden.qty,
			Segment:      last.Segment,
			Page:         last.Page,
			Source:       last.Source,
			AutoDetected: true,
		}
		out = append(out, rec)
		carry.lastIndex = len(out) - 1
		// Loop again: the tail may itself hide another record.
	}
}

// splitHidden locates an embedded code deep enough into the text, with a
// unit+quantity tail after it, and splits the text there.
func (it *Interpreter) splitHidden(text string) (string, hiddenItem, bool) {
	searchFrom := 0
	for searchFrom < len(text) {
		code, off, ok := itemcode.FindEmbedded(text[searchFrom:])
		if !ok {
			return "", hiddenItem{}, false
		}
		abs := searchFrom + off
		searchFrom = abs + 1

		if abs < it.config.HiddenMinOffset {
			continue
		}

		// Skip past the code token itself.
		rest := text[abs:]
		sp := strings.IndexFunc(rest, unicode.IsSpace)
		if sp < 0 {
			continue
		}
		tail := rest[sp:]

		desc, unit, qty, ok := parseTail(tail)
		if !ok {
			continue
		}
		return strings.TrimSpace(text[:abs]), hiddenItem{
			code: code,
			desc: desc,
			unit: unit,
			qty:  qty,
		}, true
	}
	return "", hiddenItem{}, false
}

// parseTail splits "DESC WORDS UNIT QTY [prices...]" into its parts. The
// last unit-vocabulary token followed by a number wins; anything after the
// quantity (unit prices, totals) is dropped.
func parseTail(tail string) (desc, unit string, qty decimal.NullDecimal, ok bool) {
	fields := strings.Fields(tail)
	for i := len(fields) - 2; i >= 0; i-- {
		u := model.NormalizeUnit(fields[i])
		if u == "" {
			continue
		}
		q := model.ParseQuantity(fields[i+1])
		if !q.Valid {
			continue
		}
		if i == 0 {
			// No description words before the unit; not a credible record.
			return "", "", decimal.NullDecimal{}, false
		}
		return strings.Join(fields[:i], " "), u, q, true
	}
	return "", "", decimal.NullDecimal{}, false
}
