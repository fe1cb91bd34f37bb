// Package itemcode provides the hierarchical item code value type used to
// identify line items in technical and financial documents.
//
// An item code is a dotted sequence of small integers ("1", "3.2", "12.3.4.1")
// with one to five levels. Codes are immutable values: parsing, comparison,
// and rendering never mutate their receiver.
//
// Codes coming from renumbered tables may carry a segment prefix ("S2"). The
// prefix is deliberately kept outside the Code value so that comparison and
// parent/child relations always operate on the bare code; see [Prefixed] and
// [SplitPrefix].
package itemcode
