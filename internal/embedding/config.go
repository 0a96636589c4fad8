package embedding

import (
	"fmt"
	"time"

	"github.com/DjordjeVuckovic/support-rag/internal/apperr"
	"github.com/DjordjeVuckovic/support-rag/pkg/retry"
	"github.com/caarlos0/env/v11"
)

type Config struct {
	Provider      string        `env:"EMBEDDING_PROVIDER" envDefault:"openai"`
	OpenAIAPIKey  string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string        `env:"OPENAI_BASE_URL"`
	OpenAIModel   string        `env:"OPENAI_EMBEDDING_MODEL" envDefault:"text-embedding-3-small"`
	BaseURL       string        `env:"EMBEDDING_BASE_URL" envDefault:"http://localhost:11434"`
	Model         string        `env:"EMBEDDING_MODEL" envDefault:"qwen3-embedding:0.6b"`
	MaxLength     *int          `env:"EMBEDDING_MAX_LENGTH"`
	BatchSize     int           `env:"EMBEDDING_BATCH_SIZE" envDefault:"64"`
	CacheTTL      time.Duration `env:"EMBEDDING_CACHE_TTL" envDefault:"10m"`
	Retry         retry.Config  `envPrefix:"EMBEDDING_RETRY_"`
}

func LoadConfigFromEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse embedding config: %w", err)
	}
	return cfg, nil
}

// NewFromConfig builds the configured client and the Embedder around it.
func NewFromConfig(cfg Config) (*Embedder, error) {
	opts := []EmbedderOption{
		WithRetry(cfg.Retry),
		WithCacheTTL(cfg.CacheTTL),
		WithBatchSize(cfg.BatchSize),
	}
	if cfg.MaxLength != nil {
		opts = append(opts, WithMaxLength(*cfg.MaxLength))
	}

	switch cfg.Provider {
	case "openai":
		client, err := NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
		if err != nil {
			return nil, err
		}
		return NewEmbedder(client, append(opts, WithModel(cfg.OpenAIModel))...), nil
	case "ollama":
		client, err := NewOllamaClient(cfg.BaseURL)
		if err != nil {
			return nil, apperr.NewConfiguration("EMBEDDING_BASE_URL", err.Error())
		}
		return NewEmbedder(client, append(opts, WithModel(cfg.Model))...), nil
	default:
		return nil, apperr.NewConfiguration("EMBEDDING_PROVIDER", fmt.Sprintf("unsupported provider %q", cfg.Provider))
	}
}
