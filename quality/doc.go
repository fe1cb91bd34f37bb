// Package quality scores candidate record sets.
//
// Every extraction attempt is measured with the same yardstick: field
// completeness ratios, an ordering-cleanliness ratio over adjacent coded
// pairs, and a composite confidence score that also folds in how sure
// structure recovery was about the item column. The cascade orchestrator
// uses these numbers to accept an attempt, reject it, or fall back to the
// best one seen.
package quality
