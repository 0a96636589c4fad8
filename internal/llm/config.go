package llm

import (
	"fmt"

	"github.com/DjordjeVuckovic/support-rag/internal/apperr"
	"github.com/DjordjeVuckovic/support-rag/pkg/retry"
	"github.com/caarlos0/env/v11"
)

type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderOllama Provider = "ollama"
)

type Config struct {
	Provider        Provider     `env:"LLM_PROVIDER" envDefault:"openai"`
	OpenAIAPIKey    string       `env:"OPENAI_API_KEY"`
	OpenAIBaseURL   string       `env:"OPENAI_BASE_URL"`
	OpenAIChatModel string       `env:"OPENAI_CHAT_MODEL" envDefault:"gpt-4.1-mini"`
	OllamaBaseURL   string       `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	OllamaChatModel string       `env:"OLLAMA_CHAT_MODEL" envDefault:"llama3.1"`
	Temperature     float32      `env:"LLM_TEMPERATURE" envDefault:"0.2"`
	Retry           retry.Config `envPrefix:"LLM_RETRY_"`
}

func LoadConfigFromEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse llm config: %w", err)
	}
	return cfg, nil
}

// NewCompleter builds the configured backend wrapped with retries.
func NewCompleter(cfg Config) (Completer, error) {
	var base Completer
	switch cfg.Provider {
	case ProviderOpenAI:
		c, err := NewOpenAICompleter(OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIChatModel,
		})
		if err != nil {
			return nil, err
		}
		base = c
	case ProviderOllama:
		c, err := NewOllamaCompleter(cfg.OllamaBaseURL, cfg.OllamaChatModel)
		if err != nil {
			return nil, apperr.NewConfiguration("OLLAMA_BASE_URL", err.Error())
		}
		base = c
	default:
		return nil, apperr.NewConfiguration("LLM_PROVIDER", fmt.Sprintf("unsupported provider %q", cfg.Provider))
	}

	return NewRetryingCompleter(base, cfg.Retry), nil
}
