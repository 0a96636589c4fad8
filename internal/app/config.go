// Package app assembles configuration, storage, providers and services shared
// by the API server and the CLI.
package app

import (
	"log/slog"

	"github.com/DjordjeVuckovic/support-rag/internal/embedding"
	"github.com/DjordjeVuckovic/support-rag/internal/llm"
	"github.com/DjordjeVuckovic/support-rag/internal/rag"
	"github.com/DjordjeVuckovic/support-rag/internal/storage/factory"
	"github.com/DjordjeVuckovic/support-rag/pkg/config/env"
)

const DefaultEnvPath = ".env"

type Config struct {
	Env       string
	Log       LogConfig
	Storage   factory.StorageConfig
	LLM       llm.Config
	Embedding embedding.Config
	RAG       rag.Config
}

// LoadConfig reads the optional .env file and then every config group from the environment.
func LoadConfig() (*Config, error) {
	if err := env.LoadDotEnv(appEnv(), DefaultEnvPath); err != nil {
		slog.Info("Skipping .env ...", "error", err)
	}

	logCfg, err := LoadLogConfig()
	if err != nil {
		return nil, err
	}
	storageCfg, err := factory.LoadEnv()
	if err != nil {
		return nil, err
	}
	llmCfg, err := llm.LoadConfigFromEnv()
	if err != nil {
		return nil, err
	}
	embCfg, err := embedding.LoadConfigFromEnv()
	if err != nil {
		return nil, err
	}
	ragCfg, err := rag.LoadConfigFromEnv()
	if err != nil {
		return nil, err
	}

	return &Config{
		Env:       appEnv(),
		Log:       *logCfg,
		Storage:   *storageCfg,
		LLM:       *llmCfg,
		Embedding: *embCfg,
		RAG:       *ragCfg,
	}, nil
}
