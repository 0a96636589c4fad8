package factory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/support-rag/internal/storage"
	"github.com/DjordjeVuckovic/support-rag/internal/storage/es"
	"github.com/DjordjeVuckovic/support-rag/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/support-rag/internal/storage/pg"
	"github.com/DjordjeVuckovic/support-rag/internal/storage/sqlite"
	"github.com/DjordjeVuckovic/support-rag/pkg/server"
)

// Stores bundles the chunk and document stores of one backend.
type Stores struct {
	Chunks    storage.ChunkStore
	Documents storage.DocumentStore
	Health    server.HealthChecker
	closer    func()
}

func (s *Stores) Close() {
	if s.closer != nil {
		s.closer()
	}
}

// NewStores connects to the configured backend and prepares its schema.
func NewStores(ctx context.Context, cfg StorageConfig) (*Stores, error) {
	slog.Info("Initializing storage", "type", cfg.Type)

	switch cfg.Type {
	case storage.PG:
		pool, err := pg.NewConnectionPool(ctx, cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}
		if err := pg.EnsureSchema(ctx, pool, cfg.Collections.Documents); err != nil {
			pool.Close()
			return nil, err
		}
		return &Stores{
			Chunks:    pg.NewChunkStore(pool, cfg.Collections.Documents),
			Documents: pg.NewDocumentStore(pool),
			Health:    pool,
			closer:    pool.Close,
		}, nil

	case storage.ES:
		client, err := es.NewClient(cfg.Es)
		if err != nil {
			return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
		}
		chunks, err := es.NewChunkStore(ctx, client, cfg.Es.IndexPrefix+cfg.Collections.Documents)
		if err != nil {
			return nil, err
		}
		return &Stores{
			Chunks:    chunks,
			Documents: es.NewDocumentStore(client, cfg.Es.IndexPrefix),
			Health:    es.NewHealthChecker(client),
		}, nil

	case storage.SQLite:
		db, err := sqlite.Open(ctx, cfg.SQLite)
		if err != nil {
			return nil, err
		}
		return &Stores{
			Chunks:    sqlite.NewChunkStore(db),
			Documents: sqlite.NewDocumentStore(db),
			Health:    db,
			closer: func() {
				if err := db.Close(); err != nil {
					slog.Warn("Failed to close sqlite database", "error", err)
				}
			},
		}, nil

	case storage.InMem:
		return &Stores{
			Chunks:    in_mem.NewChunkStore(),
			Documents: in_mem.NewDocumentStore(),
			Health:    server.NewOkHealthChecker(),
		}, nil

	default:
		return nil, fmt.Errorf(string(storage.ErrUnsupportedStorer), cfg.Type)
	}
}
