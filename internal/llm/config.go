package llm

import (
	"fmt"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderNone      = "none"
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderMock      = "mock"
)

// Config selects and configures the language model backend. Keys map to
// the "llm" section of the configuration file.
type Config struct {
	Provider string        `mapstructure:"provider"`
	APIKey   string        `mapstructure:"api_key"`
	Model    string        `mapstructure:"model"`
	BaseURL  string        `mapstructure:"base_url"` // OpenAI-compatible endpoints only
	Timeout  time.Duration `mapstructure:"timeout"`
	Retry    RetryPolicy   `mapstructure:"retry"`
}

// RetryPolicy bounds retries of transient failures.
type RetryPolicy struct {
	Attempts   int           `mapstructure:"attempts"`
	BaseDelay  time.Duration `mapstructure:"base_delay"`
	MaxDelay   time.Duration `mapstructure:"max_delay"`
	Multiplier float64       `mapstructure:"multiplier"`
}

// DefaultConfig leaves the model layer off.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderNone,
		Timeout:  15 * time.Second,
		Retry: RetryPolicy{
			Attempts:   3,
			BaseDelay:  500 * time.Millisecond,
			MaxDelay:   5 * time.Second,
			Multiplier: 2,
		},
	}
}

// Enabled reports whether a provider is selected.
func (c Config) Enabled() bool {
	return c.Provider != "" && c.Provider != ProviderNone
}

// Validate checks the selected provider has what it needs.
func (c Config) Validate() error {
	switch c.Provider {
	case "", ProviderNone, ProviderMock:
		return nil
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini:
		if c.APIKey == "" {
			return fmt.Errorf("llm.api_key is required for the %s provider", c.Provider)
		}
		return nil
	default:
		return fmt.Errorf("unknown llm provider %q", c.Provider)
	}
}

// defaultModels is used when Config.Model is empty.
var defaultModels = map[string]string{
	ProviderAnthropic: "claude-haiku-4-5-20251001",
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderGemini:    "gemini-2.0-flash",
}

func (c Config) model() string {
	if c.Model != "" {
		return c.Model
	}
	return defaultModels[c.Provider]
}
