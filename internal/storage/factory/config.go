package factory

import (
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/support-rag/internal/storage"
	"github.com/DjordjeVuckovic/support-rag/internal/storage/es"
	"github.com/DjordjeVuckovic/support-rag/internal/storage/pg"
	"github.com/DjordjeVuckovic/support-rag/internal/storage/sqlite"
	"github.com/caarlos0/env/v11"
)

type StorageConfig struct {
	Type        storage.Type        `env:"STORAGE_TYPE" envDefault:"in_mem"`
	Collections storage.Collections `envPrefix:"COLLECTION_"`
	Pg          pg.PoolConfig       `envPrefix:"PG_"`
	Es          es.ClientConfig     `envPrefix:"ES_"`
	SQLite      sqlite.Config       `envPrefix:"SQLITE_"`
}

func LoadEnv() (*StorageConfig, error) {
	cfg, err := env.ParseAs[StorageConfig]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse storage config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *StorageConfig) Validate() error {
	if !c.Type.Valid() {
		slog.Error("Invalid STORAGE_TYPE environment variable value", "value", c.Type)
		return fmt.Errorf(
			"invalid STORAGE_TYPE value: %s, expected one of %v",
			c.Type,
			[]storage.Type{storage.ES, storage.PG, storage.InMem, storage.SQLite})
	}

	switch c.Type {
	case storage.PG:
		if c.Pg.ConnStr == "" {
			return fmt.Errorf("PG_CONNECTION_STRING is not set")
		}
	case storage.ES:
		if len(c.Es.Addresses) == 0 {
			return fmt.Errorf("ES_ADDRESSES is not set")
		}
	}
	return nil
}
