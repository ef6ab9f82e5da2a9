package ratelimit

import (
	"sync"
	"time"

	"sandbox-claws/governor/pkg/clock"
)

// Span is the duration of the sliding window.
const Span = time.Minute

// Window is a sliding window over committed call timestamps.
//
// Timestamps are stored oldest first. Pruning is a prefix trim, which is
// correct only while the slice stays chronological; Record therefore always
// appends the current time, never an arbitrary instant.
//
// Window is safe for concurrent use.
type Window struct {
	mu    sync.Mutex
	clk   clock.Clock
	limit int
	times []time.Time
}

// NewWindow creates a Window admitting at most limit calls per Span.
// A nil clock falls back to the system clock.
func NewWindow(limit int, clk clock.Clock) *Window {
	if clk == nil {
		clk = clock.System()
	}
	return &Window{
		clk:   clk,
		limit: limit,
	}
}

// Admit reports whether one more call fits in the window right now.
// It prunes expired entries but records nothing.
func (w *Window) Admit() *Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.clk.Now()
	w.pruneLocked(now)

	count := len(w.times)
	if count >= w.limit {
		retryAfter := Span.Seconds()
		if count > 0 {
			retryAfter = Span.Seconds() - now.Sub(w.times[0]).Seconds()
		}
		return &Result{
			Allowed:           false,
			Reason:            ReasonRateLimitExceeded,
			CallsThisMinute:   count,
			MaxPerMinute:      w.limit,
			RetryAfterSeconds: retryAfter,
		}
	}

	return &Result{
		Allowed:         true,
		CallsThisMinute: count,
		MaxPerMinute:    w.limit,
		Remaining:       w.limit - count,
	}
}

// Record appends the current time to the window. Called on commit only.
func (w *Window) Record() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.times = append(w.times, w.clk.Now())
}

// Len returns the number of live entries in the window after pruning.
func (w *Window) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pruneLocked(w.clk.Now())
	return len(w.times)
}

// Limit returns the configured per-window call limit.
func (w *Window) Limit() int {
	return w.limit
}

// Reset drops all entries.
func (w *Window) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.times = w.times[:0]
}

// pruneLocked trims entries older than Span. Caller must hold the lock.
func (w *Window) pruneLocked(now time.Time) {
	cutoff := now.Add(-Span)

	i := 0
	for i < len(w.times) && w.times[i].Before(cutoff) {
		i++
	}
	if i > 0 {
		w.times = append(w.times[:0], w.times[i:]...)
	}
}
