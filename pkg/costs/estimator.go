package costs

import (
	"sandbox-claws/governor/pkg/pricing"
	"sandbox-claws/governor/pkg/tokens"
)

// defaultOutputRatio is the output estimate used when the caller supplies
// no expected output size. Agents typically produce replies shorter than
// their prompts; half the input count is a heuristic, not a guarantee.
const defaultOutputRatio = 0.5

const tokensPerMillion = 1_000_000

// Estimator prices prospective calls against the pricing table using a
// pluggable token counting strategy. It holds no mutable state and is safe
// for concurrent use.
type Estimator struct {
	table   *pricing.Table
	counter tokens.Counter
}

// NewEstimator creates an Estimator. A nil counter falls back to the
// approximate word-count strategy.
func NewEstimator(table *pricing.Table, counter tokens.Counter) *Estimator {
	if counter == nil {
		counter = tokens.NewWordCounter()
	}
	return &Estimator{
		table:   table,
		counter: counter,
	}
}

// Estimate computes the token counts and projected cost for sending prompt
// to model. expectedOutputTokens overrides the output-size heuristic when
// non-nil. Unknown models are priced at the table's default entry.
func (e *Estimator) Estimate(prompt, model string, expectedOutputTokens *int) *Estimate {
	entry := e.table.Lookup(model)

	inputTokens := e.counter.Count(prompt)

	outputTokens := int(float64(inputTokens) * defaultOutputRatio)
	if expectedOutputTokens != nil {
		outputTokens = *expectedOutputTokens
	}

	inputCost := tokenCost(inputTokens, entry.InputPerMillion)
	outputCost := tokenCost(outputTokens, entry.OutputPerMillion)

	return &Estimate{
		Model:        model,
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		TotalTokens:  inputTokens + outputTokens,
		InputCost:    inputCost,
		OutputCost:   outputCost,
		TotalCost:    inputCost + outputCost,
		Pricing:      entry,
	}
}

// tokenCost prices a token count at a per-million-token rate.
func tokenCost(count int, perMillion float64) float64 {
	if count <= 0 {
		return 0
	}
	return (float64(count) / tokensPerMillion) * perMillion
}
