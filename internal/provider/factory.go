package provider

import (
	"fmt"

	"github.com/julianshen/aidocgen/internal/config"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// ProviderConstructor is a function that creates a new LLMProvider.
type ProviderConstructor func(baseURL, apiKey string) LLMProvider

// registry holds registered provider constructors.
var registry = map[string]ProviderConstructor{}

// RegisterProvider registers a provider constructor by name.
func RegisterProvider(name string, constructor ProviderConstructor) {
	registry[name] = constructor
}

// NewProvider creates an LLMProvider from the given configuration. The
// configuration value is constructed once by the caller and passed in;
// nothing here reads process-global state.
func NewProvider(cfg *config.Config) (LLMProvider, error) {
	name := cfg.Provider
	if name == "" {
		name = "openai"
	}

	constructor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %q", name)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" && name == "openai" {
		baseURL = defaultOpenAIBaseURL
	}

	if name == "openai" && cfg.APIKey == "" {
		return nil, fmt.Errorf("openai provider requires an API key; run `aidocgen configure`")
	}

	return constructor(baseURL, cfg.APIKey), nil
}
