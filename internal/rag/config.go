package rag

import (
	"fmt"

	"github.com/DjordjeVuckovic/support-rag/internal/chunker"
	"github.com/caarlos0/env/v11"
)

const DefaultTopK = 4

type Config struct {
	TopK     int            `env:"RAG_TOP_K" envDefault:"4"`
	DataDir  string         `env:"RAG_DATA_DIR" envDefault:"data"`
	Chunking chunker.Config `envPrefix:"RAG_"`
}

func LoadConfigFromEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse rag config: %w", err)
	}
	if cfg.TopK <= 0 {
		return nil, fmt.Errorf("RAG_TOP_K must be positive, got %d", cfg.TopK)
	}
	if err := cfg.Chunking.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
