// Package tables recovers the row/column structure of a document table.
//
// Two interchangeable paths produce the same output, a [model.Grid] with
// inferred column roles:
//
//   - [Builder.FromRows] passes through rows that arrive already
//     cell-delimited (native text-layer table readers, HTML tables,
//     spreadsheets), padding ragged rows to a common width.
//   - [Builder.FromTokens] reconstructs a virtual grid from positioned text
//     tokens (the OCR path) by clustering vertical centers into rows and
//     horizontal centers into columns, with tolerances derived from the
//     median token size.
//
// After grids are built, column roles (item, description, unit, quantity)
// are resolved in three passes: header-keyword mapping, content-based
// inference for roles the header did not provide, and a validation pass that
// demotes roles whose column statistics disagree. Resolution is
// deterministic for a fixed grid.
package tables
