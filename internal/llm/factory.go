package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/serenity-circle/serenity/internal/store"
)

// New builds the configured provider wrapped as
// caller → timeout → retry → recorder → backend. It returns ErrDisabled when no
// provider is selected. events may be nil.
func New(ctx context.Context, cfg Config, events store.EventRepo, log *zap.Logger) (Provider, error) {
	if !cfg.Enabled() {
		return nil, ErrDisabled
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderAnthropic:
		base = NewAnthropic(cfg.APIKey, cfg.model())
	case ProviderOpenAI:
		base = NewOpenAI(cfg.APIKey, cfg.model(), cfg.BaseURL)
	case ProviderGemini:
		base, err = NewGemini(ctx, cfg.APIKey, cfg.model())
	case ProviderMock:
		base = NewScripted()
	}
	if err != nil {
		return nil, fmt.Errorf("init %s provider: %w", cfg.Provider, err)
	}

	recorded := WithRecorder(base, events, log)
	return WithTimeout(WithRetry(recorded, cfg.Retry), cfg.Timeout), nil
}
