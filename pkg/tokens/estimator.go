// Package tokens estimates the token cost of prompts before they are sent.
//
// Estimates feed the rate limiter's token quota, so they only need to be
// deterministic and roughly right: a character-ratio heuristic (about four
// characters per token for English text) achieves that with no model
// downloads or tokenizer dependencies.
package tokens

import "math"

// DefaultCharsPerToken is the ratio used when no model-specific ratio is
// configured. Roughly accurate for English prose across current models.
const DefaultCharsPerToken = 4.0

// Config contains configuration for an Estimator.
type Config struct {
	// CharsPerToken overrides the default characters-per-token ratio.
	CharsPerToken float64

	// ModelRatios maps model names to model-specific ratios, taking
	// precedence over CharsPerToken.
	ModelRatios map[string]float64
}

// Estimator computes deterministic token cost estimates from text length.
// An Estimator is immutable after creation and safe for concurrent use.
type Estimator struct {
	charsPerToken float64
	modelRatios   map[string]float64
}

// NewEstimator creates an estimator from the given configuration.
func NewEstimator(cfg Config) *Estimator {
	ratio := cfg.CharsPerToken
	if ratio <= 0 {
		ratio = DefaultCharsPerToken
	}

	ratios := make(map[string]float64, len(cfg.ModelRatios))
	for model, r := range cfg.ModelRatios {
		if r > 0 {
			ratios[model] = r
		}
	}

	return &Estimator{
		charsPerToken: ratio,
		modelRatios:   ratios,
	}
}

// Estimate returns the estimated token count for text when sent to model.
// Empty text costs zero; any non-empty text costs at least one token.
func (e *Estimator) Estimate(text, model string) int64 {
	if text == "" {
		return 0
	}

	ratio := e.charsPerToken
	if r, ok := e.modelRatios[model]; ok {
		ratio = r
	}

	estimated := int64(math.Ceil(float64(len(text)) / ratio))
	if estimated < 1 {
		estimated = 1
	}
	return estimated
}
