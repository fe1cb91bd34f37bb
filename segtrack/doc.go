// Package segtrack tracks table segments and numbering restarts across one
// document.
//
// Real documents mix independently numbered tables in one file: an original
// scope followed by an amendment, continuation tables after a signature
// page, per-block budgets with their own "1.1". A hard "codes must
// increase" rule would wrongly split valid continuations, so the tracker
// treats out-of-order codes as evidence, not as errors:
//
//   - a different structural signature or a new section label always opens
//     a new segment;
//   - a numbering restart inside the same segment becomes a prefixed group
//     ("S2-1.1") only when enough of the restarted codes were already seen
//     in the segment; otherwise the table is taken as a new segment.
//
// The first segment of a document never receives a prefix.
package segtrack
