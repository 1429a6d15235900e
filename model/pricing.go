package model

import ai "github.com/Rubix-av/LLM-Browser-Based-Multi-Tool"

// Pricing holds per-token costs in USD per million tokens.
type Pricing struct {
	InputPerMillion  float64
	OutputPerMillion float64
}

// Cost returns the estimated USD cost for the given usage.
func (p Pricing) Cost(u ai.Usage) float64 {
	return float64(u.InputTokens)*p.InputPerMillion/1e6 +
		float64(u.OutputTokens)*p.OutputPerMillion/1e6
}

// Pricing last verified: December 14, 2025.
var pricing = map[string]Pricing{
	ClaudeOpus45:   {InputPerMillion: 5.00, OutputPerMillion: 25.00},
	ClaudeSonnet45: {InputPerMillion: 3.00, OutputPerMillion: 15.00},
	ClaudeHaiku45:  {InputPerMillion: 1.00, OutputPerMillion: 5.00},

	GPT4o:     {InputPerMillion: 2.50, OutputPerMillion: 10.00},
	GPT4oMini: {InputPerMillion: 0.15, OutputPerMillion: 0.60},
	GPT5:      {InputPerMillion: 1.25, OutputPerMillion: 10.00},
	GPT5Mini:  {InputPerMillion: 0.25, OutputPerMillion: 1.00},
	O3:        {InputPerMillion: 2.00, OutputPerMillion: 16.00},
	O3Mini:    {InputPerMillion: 0.50, OutputPerMillion: 2.00},
	O4Mini:    {InputPerMillion: 0.50, OutputPerMillion: 2.00},

	Gemini25Pro:       {InputPerMillion: 1.25, OutputPerMillion: 10.00},
	Gemini25Flash:     {InputPerMillion: 0.30, OutputPerMillion: 2.50},
	Gemini25FlashLite: {InputPerMillion: 0.10, OutputPerMillion: 0.40},
}

// PricingFor returns the pricing for a known model.
// The second return value is false for models not in the table.
func PricingFor(model string) (Pricing, bool) {
	p, ok := pricing[model]
	return p, ok
}

// EstimateCost returns the estimated USD cost of the given usage on a
// model, or 0 and false when the model's pricing is unknown.
func EstimateCost(model string, u ai.Usage) (float64, bool) {
	p, ok := pricing[model]
	if !ok {
		return 0, false
	}
	return p.Cost(u), true
}
