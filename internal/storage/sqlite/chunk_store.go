package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/DjordjeVuckovic/support-rag/internal/domain"
	"github.com/DjordjeVuckovic/support-rag/internal/storage"
	"github.com/google/uuid"
)

type ChunkStore struct {
	db *sql.DB
}

func NewChunkStore(d *DB) *ChunkStore {
	return &ChunkStore{db: d.db}
}

func (s *ChunkStore) Add(ctx context.Context, chunks []domain.DocumentChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO document_chunks (id, source, chunk_text, embedding) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, c := range chunks {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		if _, err := stmt.ExecContext(ctx, c.ID.String(), c.Source, c.Text, encodeEmbedding(c.Embedding)); err != nil {
			return fmt.Errorf("failed to insert chunk: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit chunks: %w", err)
	}
	return nil
}

func (s *ChunkStore) Query(ctx context.Context, embedding []float32, k int) ([]domain.RetrievedChunk, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, source, chunk_text, embedding FROM document_chunks ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks: %w", err)
	}
	defer rows.Close()

	var all []domain.DocumentChunk
	for rows.Next() {
		var (
			c    domain.DocumentChunk
			id   string
			blob []byte
		)
		if err := rows.Scan(&id, &c.Source, &c.Text, &blob); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		if c.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("invalid chunk id %q: %w", id, err)
		}
		c.Embedding = decodeEmbedding(blob)
		all = append(all, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate chunks: %w", err)
	}

	return storage.NearestChunks(all, embedding, k), nil
}

func (s *ChunkStore) DeleteAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM document_chunks`); err != nil {
		return fmt.Errorf("failed to clear chunks: %w", err)
	}
	return nil
}

func (s *ChunkStore) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM document_chunks ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to list chunk ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan chunk id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
