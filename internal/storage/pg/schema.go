package pg

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const documentsTable = "documents"

// EnsureSchema creates the vector extension, the document table and the chunk table when missing.
func EnsureSchema(ctx context.Context, pool *ConnectionPool, chunkTable string) error {
	chunks := pgx.Identifier{chunkTable}.Sanitize()
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		`CREATE TABLE IF NOT EXISTS documents (
			seq        BIGSERIAL,
			collection TEXT  NOT NULL,
			id         TEXT  NOT NULL,
			payload    JSONB NOT NULL,
			indexed    JSONB NOT NULL DEFAULT '{}'::jsonb,
			PRIMARY KEY (collection, id)
		)`,
		`CREATE INDEX IF NOT EXISTS documents_indexed_idx ON documents USING GIN (indexed jsonb_path_ops)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id         UUID PRIMARY KEY,
			source     TEXT   NOT NULL,
			chunk_text TEXT   NOT NULL,
			embedding  vector NOT NULL
		)`, chunks),
	}

	for _, stmt := range stmts {
		if _, err := pool.conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
