// Package llm wraps the Gemini API behind a small client interface and maps
// the extraction pipeline's stages onto model tiers: narrow second-pass
// field refinement runs on the cheap tier, full-document candidate-record
// extraction on the standard one.
package llm

// ModelTier names the capability level a call needs. The concrete model is
// resolved through Config so callers never hard-code model names.
type ModelTier string

const (
	// TierLite serves narrow calls: single-field refinement against a closed
	// option set.
	TierLite ModelTier = "lite"
	// TierStandard serves full-document structured extraction, text and
	// vision alike.
	TierStandard ModelTier = "standard"
	// TierAdvanced is reserved for degraded or ambiguous documents.
	TierAdvanced ModelTier = "advanced"
)

// Provider identifies the backing LLM service.
type Provider string

// ProviderGemini is the only provider currently wired.
const ProviderGemini Provider = "gemini"

// Config maps tiers to concrete model names for one provider.
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// DefaultConfig returns the tier mapping the extraction pipeline runs on.
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig maps the three tiers onto the Gemini 2.5 family.
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel resolves a tier to a model name. An unconfigured tier falls back
// to standard, then lite; an empty config yields "".
func (c *Config) GetModel(tier ModelTier) string {
	for _, t := range []ModelTier{tier, TierStandard, TierLite} {
		if model, ok := c.Models[t]; ok {
			return model
		}
	}
	return ""
}

// WithModel returns a copy of the config with one tier overridden. The
// receiver is left untouched.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	models := make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		models[k] = v
	}
	models[tier] = model
	return &Config{Provider: c.Provider, Models: models}
}
