// Package llm provides the generator backend using CloudWeGo Eino.
package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/ollama"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/eino-contrib/ollama/api"
)

// Provider identifies the LLM provider to use.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGemini    Provider = "gemini"
	ProviderOllama    Provider = "ollama"

	// DefaultOllamaURL is the local Ollama endpoint.
	DefaultOllamaURL = "http://localhost:11434"
)

// Config holds configuration for creating a chat model.
type Config struct {
	Provider    Provider
	Model       string
	APIKey      string
	BaseURL     string  // Ollama only
	MaxTokens   int     // 0 = provider default (Anthropic requires one; see resolveMaxTokens)
	Temperature float64 // 0 = provider default
}

// defaultMaxTokens is used where the provider requires an explicit output
// budget and the config leaves it unset.
const defaultMaxTokens = 4096

func resolveMaxTokens(n int) int {
	if n <= 0 {
		return defaultMaxTokens
	}
	return n
}

func intPtr(n int) *int { return &n }

func float32Ptr(f float32) *float32 { return &f }

// NewChatModel creates a ChatModel instance based on the provider
// configuration. The returned Eino BaseChatModel is used for Generate()
// calls.
func NewChatModel(ctx context.Context, cfg Config) (model.BaseChatModel, error) {
	switch cfg.Provider {
	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		modelCfg := &openai.ChatModelConfig{
			Model:  cfg.Model,
			APIKey: cfg.APIKey,
		}
		if cfg.MaxTokens > 0 {
			modelCfg.MaxTokens = intPtr(cfg.MaxTokens)
		}
		if cfg.Temperature > 0 {
			modelCfg.Temperature = float32Ptr(float32(cfg.Temperature))
		}
		return openai.NewChatModel(ctx, modelCfg)

	case ProviderAnthropic:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("anthropic API key is required")
		}
		claudeCfg := &claude.Config{
			APIKey:    cfg.APIKey,
			Model:     cfg.Model,
			MaxTokens: resolveMaxTokens(cfg.MaxTokens),
		}
		if cfg.Temperature > 0 {
			claudeCfg.Temperature = float32Ptr(float32(cfg.Temperature))
		}
		return claude.NewChatModel(ctx, claudeCfg)

	case ProviderGemini:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("gemini API key is required")
		}
		// Gemini extension reads credentials from the environment.
		_ = os.Setenv("GOOGLE_API_KEY", cfg.APIKey)
		_ = os.Setenv("GEMINI_API_KEY", cfg.APIKey)
		geminiCfg := &gemini.Config{
			Model: cfg.Model,
		}
		if cfg.MaxTokens > 0 {
			geminiCfg.MaxTokens = intPtr(cfg.MaxTokens)
		}
		if cfg.Temperature > 0 {
			geminiCfg.Temperature = float32Ptr(float32(cfg.Temperature))
		}
		return gemini.NewChatModel(ctx, geminiCfg)

	case ProviderOllama:
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = DefaultOllamaURL
		}
		ollamaCfg := &ollama.ChatModelConfig{
			BaseURL: baseURL,
			Model:   cfg.Model,
		}
		if cfg.MaxTokens > 0 || cfg.Temperature > 0 {
			opts := &api.Options{}
			if cfg.MaxTokens > 0 {
				opts.NumPredict = cfg.MaxTokens
			}
			if cfg.Temperature > 0 {
				opts.Temperature = float32(cfg.Temperature)
			}
			ollamaCfg.Options = opts
		}
		return ollama.NewChatModel(ctx, ollamaCfg)

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s (supported: openai, anthropic, gemini, ollama)", cfg.Provider)
	}
}

// ValidateProvider checks if the given provider string is supported.
func ValidateProvider(p string) (Provider, error) {
	switch Provider(p) {
	case ProviderOpenAI, ProviderAnthropic, ProviderGemini, ProviderOllama:
		return Provider(p), nil
	default:
		return "", fmt.Errorf("unsupported provider: %s", p)
	}
}
