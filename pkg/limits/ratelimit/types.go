package ratelimit

// ReasonRateLimitExceeded is the denial reason reported by a full window.
const ReasonRateLimitExceeded = "rate_limit_exceeded"

// Result contains the outcome of a rate limit check.
type Result struct {
	// Allowed indicates if the call is permitted.
	Allowed bool `json:"allowed"`

	// Reason explains why the call was rejected (if Allowed=false).
	Reason string `json:"reason,omitempty"`

	// CallsThisMinute is the number of committed calls in the window.
	CallsThisMinute int `json:"calls_this_minute"`

	// MaxPerMinute is the configured window limit.
	MaxPerMinute int `json:"max_per_minute"`

	// Remaining is the unused capacity in the window (if Allowed=true).
	Remaining int `json:"remaining,omitempty"`

	// RetryAfterSeconds is how long to wait until the oldest entry
	// expires and a slot opens (if Allowed=false).
	RetryAfterSeconds float64 `json:"retry_after_seconds,omitempty"`
}
