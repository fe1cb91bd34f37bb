package rowscan

import "github.com/shopspring/decimal"

// Carry is the interpreter state threaded between rows, grids and pages of
// one extraction attempt. The zero value is not ready; use NewCarry.
type Carry struct {
	// lastIndex is the index of the last emitted record in the output
	// slice, -1 when none.
	lastIndex int

	// pendingDescription collects description fragments seen before their
	// coded row.
	pendingDescription []string

	// pendingUnit and pendingQuantity hold a unit+quantity pair seen after
	// a completed record, waiting for the next coded row.
	pendingUnit     string
	pendingQuantity decimal.NullDecimal

	// label is the most recent section-header label; rowsSinceLabel ages it
	// so only labels a few rows back influence restart decisions.
	label          string
	rowsSinceLabel int
}

// NewCarry returns an empty carry state.
func NewCarry() *Carry {
	return &Carry{lastIndex: -1}
}

// Label returns the section label seen within the last maxAge rows, or "".
func (c *Carry) Label(maxAge int) string {
	if c.label == "" || c.rowsSinceLabel > maxAge {
		return ""
	}
	return c.label
}

// setLabel records a fresh section-header label.
func (c *Carry) setLabel(label string) {
	c.label = label
	c.rowsSinceLabel = 0
}

// age advances the label age by one row.
func (c *Carry) age() {
	if c.label != "" {
		c.rowsSinceLabel++
	}
}

// clearPending drops all pending fragment buffers.
func (c *Carry) clearPending() {
	c.pendingDescription = nil
	c.pendingUnit = ""
	c.pendingQuantity = decimal.NullDecimal{}
}
