package costs

import "sandbox-claws/governor/pkg/pricing"

// Estimate contains the token counts and projected cost for one call.
// Field names mirror the governor's wire format.
type Estimate struct {
	// Model is the model the estimate was priced against.
	Model string `json:"model"`

	// InputTokens is the counted token total for the prompt.
	InputTokens int `json:"input_tokens"`

	// OutputTokens is the expected completion token total.
	OutputTokens int `json:"output_tokens"`

	// TotalTokens is InputTokens + OutputTokens.
	TotalTokens int `json:"total_tokens"`

	// InputCost is the projected prompt cost in USD.
	InputCost float64 `json:"input_cost"`

	// OutputCost is the projected completion cost in USD.
	OutputCost float64 `json:"output_cost"`

	// TotalCost is InputCost + OutputCost.
	TotalCost float64 `json:"total_cost"`

	// Pricing is the pricing entry the estimate was computed from.
	Pricing pricing.Entry `json:"pricing"`
}
