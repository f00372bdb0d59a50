package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))
}

func TestDefaultOpenAIConfig(t *testing.T) {
	config := DefaultOpenAIConfig()

	assert.Equal(t, ProviderOpenAI, config.Provider)
	assert.Equal(t, DefaultGatewayURL, config.BaseURL)
	assert.Equal(t, "google/gemini-3-flash-preview", config.GetModel(TierStandard))
	assert.Equal(t, ProviderOpenAI, ConfigFor(ProviderOpenAI).Provider)
	assert.Equal(t, ProviderGemini, ConfigFor("other").Provider)
}

func TestGetModel_Fallback(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite: "fallback-model",
		},
	}

	// Unknown tier should fallback to TierStandard, then TierLite
	assert.Equal(t, "fallback-model", config.GetModel("unknown"))
}

func TestGetModel_EmptyConfig(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models:   map[ModelTier]string{},
	}

	assert.Equal(t, "", config.GetModel(TierAdvanced))
}

func TestWithModel(t *testing.T) {
	config := DefaultConfig()
	newConfig := config.WithModel(TierAdvanced, "custom-model")

	// Original should be unchanged
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))

	// New config should have custom model
	assert.Equal(t, "custom-model", newConfig.GetModel(TierAdvanced))

	// Other tiers should be copied
	assert.Equal(t, "gemini-2.5-flash-lite", newConfig.GetModel(TierLite))
	assert.Equal(t, config.Temperature, newConfig.Temperature)
}

func TestWithAllModels(t *testing.T) {
	config := DefaultConfig().WithAllModels("one-model")
	for _, tier := range []ModelTier{TierLite, TierStandard, TierAdvanced} {
		assert.Equal(t, "one-model", config.GetModel(tier))
	}
}

func TestProvider_Valid(t *testing.T) {
	assert.True(t, ProviderGemini.Valid())
	assert.True(t, ProviderOpenAI.Valid())
	assert.False(t, Provider("anthropic").Valid())
}
