package pg

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/support-rag/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

// ChunkStore keeps chunks in a pgvector table and ranks them by cosine distance.
type ChunkStore struct {
	db    *pgxpool.Pool
	table string
}

func NewChunkStore(pool *ConnectionPool, table string) *ChunkStore {
	return &ChunkStore{db: pool.GetConn(), table: table}
}

func (s *ChunkStore) Add(ctx context.Context, chunks []domain.DocumentChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	rows := make([][]any, len(chunks))
	for i, c := range chunks {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		rows[i] = []any{c.ID, c.Source, c.Text, pgvector.NewVector(c.Embedding)}
	}

	n, err := s.db.CopyFrom(
		ctx,
		pgx.Identifier{s.table},
		[]string{"id", "source", "chunk_text", "embedding"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to bulk insert chunks: %w", err)
	}
	slog.Debug("Chunks copied", "table", s.table, "rows", n)

	return nil
}

func (s *ChunkStore) Query(ctx context.Context, embedding []float32, k int) ([]domain.RetrievedChunk, error) {
	if k <= 0 {
		return []domain.RetrievedChunk{}, nil
	}

	query := fmt.Sprintf(
		`SELECT source, chunk_text, embedding <=> $1 AS distance FROM %s ORDER BY distance ASC LIMIT $2`,
		pgx.Identifier{s.table}.Sanitize(),
	)
	rows, err := s.db.Query(ctx, query, pgvector.NewVector(embedding), k)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks: %w", err)
	}
	defer rows.Close()

	out := make([]domain.RetrievedChunk, 0, k)
	for rows.Next() {
		var (
			source, text string
			distance     float64
		)
		if err := rows.Scan(&source, &text, &distance); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		d := distance
		out = append(out, domain.NewRetrievedChunk(source, text, &d))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate chunks: %w", err)
	}

	return out, nil
}

func (s *ChunkStore) DeleteAll(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, "TRUNCATE TABLE "+pgx.Identifier{s.table}.Sanitize()); err != nil {
		return fmt.Errorf("failed to clear chunks: %w", err)
	}
	return nil
}

func (s *ChunkStore) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, "SELECT id::text FROM "+pgx.Identifier{s.table}.Sanitize())
	if err != nil {
		return nil, fmt.Errorf("failed to list chunk ids: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect chunk ids: %w", err)
	}
	return ids, nil
}
