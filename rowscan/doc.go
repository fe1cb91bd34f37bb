// Package rowscan interprets recovered grids into line-item records.
//
// The interpreter walks a [model.Grid] one row at a time, threading a
// [Carry] state (last emitted record plus pending fragment buffers) between
// rows and between grids, so that descriptions split across rows and pages
// reassemble correctly. Each row is offered to a prioritized list of
// matchers; the first matcher that consumes the row wins:
//
//  1. noise rows (print timestamps, tax ids, pagination) are dropped,
//  2. section headers (bare group number + short caps label) are dropped
//     but remembered as the current label,
//  3. coded rows emit a new record, attaching pending fragments,
//  4. everything else is a continuation of the previous record.
//
// A recovery pass also splits "hidden items": over-long descriptions that
// swallowed a second record when the source layer merged two rows into one
// cell.
package rowscan
