// Package ledger implements the three-tier cost ledger at the heart of
// the governor.
//
// The ledger tracks spending against session, hourly, and daily caps.
// Hourly and daily tiers roll over lazily: the first check or commit after
// a tier's reset boundary zeroes the tier and schedules the next boundary
// one period out. There is no background timer, and a single call performs
// at most one reset per tier regardless of how long the ledger sat idle.
//
// All ledger operations run under one mutex, so a commit (history append,
// rate-window advance, tier updates, alert evaluation) is observed
// atomically by concurrent readers. Admission checks read but never add
// cost; Commit is the only place cost, calls, and tokens are recorded, and
// it never refuses: a call that already happened must be accounted for
// even when it overshoots a cap.
package ledger
