// Package governor ties the estimator, rate limiter, and budget ledger
// together behind one façade.
//
// The façade implements the check-before/report-after protocol: callers
// ask Check whether a prospective call is admissible, make the call
// themselves if allowed, then report what actually happened via Track.
// Check never mutates ledger state; Track never refuses. The gap between
// estimated and actual cost is reconciled by always committing actuals.
package governor
