// Package llm provides the model client used for best-effort structured
// extraction, its tier configuration and response cleanup helpers.
package llm

// ModelTier selects how capable (and how slow) the extraction model is
type ModelTier string

const (
	// TierLite is the default for section extraction
	TierLite ModelTier = "lite"
	// TierStandard handles long or messy documents
	TierStandard ModelTier = "standard"
	// TierAdvanced is reserved for manual re-runs
	TierAdvanced ModelTier = "advanced"
)

// ParseTier maps a config string to a tier, defaulting to TierLite
func ParseTier(s string) ModelTier {
	switch ModelTier(s) {
	case TierStandard, TierAdvanced:
		return ModelTier(s)
	default:
		return TierLite
	}
}

// Models maps each tier to a Gemini model name
type Models map[ModelTier]string

// DefaultModels returns the Gemini models used for extraction
func DefaultModels() Models {
	return Models{
		TierLite:     "gemini-2.5-flash-lite",
		TierStandard: "gemini-2.5-flash",
		TierAdvanced: "gemini-2.5-pro",
	}
}

// For returns the model for tier; unknown tiers use the lite model
func (m Models) For(tier ModelTier) string {
	if name, ok := m[tier]; ok {
		return name
	}
	return m[TierLite]
}
