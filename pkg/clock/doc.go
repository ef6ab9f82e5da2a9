// Package clock provides injectable time sources.
//
// The governor separates two notions of time: wall-clock time for budget
// period boundaries and record timestamps, and monotonic time for rate
// window arithmetic. Both are injected as Clock values so rollover and
// rate-limiting behavior can be tested deterministically without sleeping.
package clock
