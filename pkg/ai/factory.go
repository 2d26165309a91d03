package ai

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/yann-lu/mind-balance/internal/config"
)

// ProviderFactory builds chat providers from stored configurations. All
// providers share one HTTP client with the configured request timeout.
type ProviderFactory struct {
	client *http.Client
}

func NewProviderFactory(cfg config.AI) *ProviderFactory {
	timeout := time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	return &ProviderFactory{client: &http.Client{Timeout: timeout}}
}

// Build returns the provider selected by the configuration. An unknown
// provider name is a configuration error, not a transport one.
func (f *ProviderFactory) Build(cfg Config) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "deepseek":
		return NewDeepSeekProvider(cfg.APIKey, cfg.Model, f.client), nil
	case "qwen":
		return NewQwenProvider(cfg.APIKey, cfg.Model, f.client), nil
	case "openai":
		return NewOpenAIProvider(cfg.APIKey, cfg.APIBase, cfg.Model, f.client), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, cfg.Provider)
}
