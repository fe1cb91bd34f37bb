// Package cascade runs extraction backends in priority order and picks a
// winner.
//
// A [Backend] wraps one way of getting line items out of a document: the
// native text layer, OCR over page images, a model-based structured
// extractor. Backends are tried cheapest first; each attempt is scored with
// package quality and accepted when its quantity ratio clears the stage
// threshold with at least one complete record. When nothing clears, the
// orchestrator falls back to the best attempt seen; when early attempts are
// weak it escalates to the costlier backends anyway.
//
// Every attempt, accepted or not, lands in the audit trail, including
// collaborator failures and cancellations. Nothing a backend does — error,
// panic, garbage output — is fatal to the document; failure surfaces as
// degraded confidence and an audit entry.
//
// The shared [Engine] is the per-attempt pipeline every grid-producing
// backend uses: structure recovery, row interpretation, segment tracking,
// scoring.
package cascade
