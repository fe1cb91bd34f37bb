// Package model provides the intermediate representation for extracted
// line items.
//
// This package defines the data structures shared by every extraction stage:
// positioned text tokens coming from recognizers, the virtual [Grid] built by
// structure recovery, the canonical [Record] line item, and the [Segment]
// bookkeeping used to tell independently numbered tables apart.
//
// Everything here is plain data. A document is processed single-threaded end
// to end, so no type in this package carries locking; separate documents must
// use separate values.
package model
