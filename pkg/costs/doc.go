// Package costs estimates the cost of prospective LLM calls.
//
// The Estimator is a pure function over its inputs and the pricing table:
// it counts input tokens with the injected tokens.Counter, estimates output
// tokens (half the input count when the caller has no better guess), and
// prices both sides at the model's per-million-token rates. No rounding is
// applied; presentation-layer rounding is the caller's concern.
package costs
