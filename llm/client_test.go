package llm

import (
	"context"
	"testing"
)

func TestValidateProvider(t *testing.T) {
	for _, p := range []string{"openai", "anthropic", "gemini", "ollama"} {
		if _, err := ValidateProvider(p); err != nil {
			t.Errorf("ValidateProvider(%q) unexpected error: %v", p, err)
		}
	}
	if _, err := ValidateProvider("bedrock"); err == nil {
		t.Error("expected error for unsupported provider")
	}
}

func TestNewChatModelRequiresAPIKey(t *testing.T) {
	ctx := context.Background()
	for _, p := range []Provider{ProviderOpenAI, ProviderAnthropic, ProviderGemini} {
		if _, err := NewChatModel(ctx, Config{Provider: p, Model: "m"}); err == nil {
			t.Errorf("provider %s should require an API key", p)
		}
	}
}

func TestResolveMaxTokens(t *testing.T) {
	if got := resolveMaxTokens(0); got != defaultMaxTokens {
		t.Errorf("unset budget should fall back to %d, got %d", defaultMaxTokens, got)
	}
	if got := resolveMaxTokens(-1); got != defaultMaxTokens {
		t.Errorf("negative budget should fall back to %d, got %d", defaultMaxTokens, got)
	}
	if got := resolveMaxTokens(2048); got != 2048 {
		t.Errorf("explicit budget overridden: %d", got)
	}
}

func TestNewChatModelUnknownProvider(t *testing.T) {
	if _, err := NewChatModel(context.Background(), Config{Provider: "nope"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}
