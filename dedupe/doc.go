// Package dedupe reconciles extracted record lists after the cascade has
// picked a winner.
//
// DedupeAll runs three collapse passes in order (parent/child pairs,
// restart-prefix duplicates, in-segment code duplicates) followed by
// orphan-suffix cleanup. Merge reconciles two independently produced
// record lists, preferring the primary and backfilling its gaps from the
// secondary. Both operations are total: they never fail, and running them
// again on their own output changes nothing.
package dedupe
