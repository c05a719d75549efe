package llm

import (
	"context"
	"errors"
	"testing"
)

func TestNewDisabled(t *testing.T) {
	for _, name := range []string{"", ProviderNone} {
		cfg := DefaultConfig()
		cfg.Provider = name
		if _, err := New(context.Background(), cfg, nil, nil); !errors.Is(err, ErrDisabled) {
			t.Errorf("provider %q: got %v, want ErrDisabled", name, err)
		}
	}
}

func TestNewValidates(t *testing.T) {
	tests := []struct {
		provider string
		key      string
		wantErr  bool
	}{
		{ProviderAnthropic, "", true},
		{ProviderOpenAI, "", true},
		{ProviderGemini, "", true},
		{"llama", "k", true},
		{ProviderAnthropic, "k", false},
		{ProviderOpenAI, "k", false},
		{ProviderMock, "", false},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Provider = tt.provider
		cfg.APIKey = tt.key
		p, err := New(context.Background(), cfg, nil, nil)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s key=%q: err = %v, wantErr %v", tt.provider, tt.key, err, tt.wantErr)
			continue
		}
		if err == nil && p.Name() != tt.provider {
			t.Errorf("name = %q, want %q", p.Name(), tt.provider)
		}
	}
}

func TestDefaultModels(t *testing.T) {
	cfg := Config{Provider: ProviderOpenAI}
	if got := cfg.model(); got != "gpt-4o-mini" {
		t.Errorf("got %q", got)
	}
	cfg.Model = "gpt-4o"
	if got := cfg.model(); got != "gpt-4o" {
		t.Errorf("got %q", got)
	}
}
