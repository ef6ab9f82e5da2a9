// Package ratelimit implements the sliding one-minute call window.
//
// The window keeps the raw timestamps of committed calls in insertion
// order. Before every check the expired prefix (entries older than the
// window span) is trimmed, so the window never holds stale timestamps at
// the moment a check completes.
//
// Admit is a speculative check: it does not record a timestamp. Recording
// happens only when a call is actually committed, so a caller that checks
// and then decides not to call consumes no rate budget.
package ratelimit
