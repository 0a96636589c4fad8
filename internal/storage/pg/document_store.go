package pg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/DjordjeVuckovic/support-rag/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DocumentStore struct {
	db *pgxpool.Pool
}

func NewDocumentStore(pool *ConnectionPool) *DocumentStore {
	return &DocumentStore{db: pool.GetConn()}
}

func (s *DocumentStore) Put(ctx context.Context, collection, id string, payload []byte, indexed map[string]string) error {
	if indexed == nil {
		indexed = map[string]string{}
	}
	indexedJSON, err := json.Marshal(indexed)
	if err != nil {
		return fmt.Errorf("failed to marshal indexed fields: %w", err)
	}

	cmd := `
		INSERT INTO documents (collection, id, payload, indexed)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (collection, id) DO UPDATE
		SET payload = EXCLUDED.payload, indexed = EXCLUDED.indexed
	`
	if _, err := s.db.Exec(ctx, cmd, collection, id, payload, indexedJSON); err != nil {
		return fmt.Errorf("failed to upsert %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *DocumentStore) Get(ctx context.Context, collection, id string) (*storage.Document, error) {
	row := s.db.QueryRow(ctx,
		`SELECT id, payload, indexed FROM documents WHERE collection = $1 AND id = $2`,
		collection, id,
	)

	doc, err := scanDocument(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s/%s: %w", collection, id, err)
	}
	return doc, nil
}

func (s *DocumentStore) Query(ctx context.Context, collection string, filter storage.Filter) ([]storage.Document, error) {
	if filter == nil {
		filter = storage.Filter{}
	}
	filterJSON, err := json.Marshal(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal filter: %w", err)
	}

	rows, err := s.db.Query(ctx,
		`SELECT id, payload, indexed FROM documents WHERE collection = $1 AND indexed @> $2::jsonb ORDER BY seq`,
		collection, filterJSON,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer rows.Close()

	var out []storage.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", collection, err)
		}
		out = append(out, *doc)
	}
	return out, rows.Err()
}

func (s *DocumentStore) Delete(ctx context.Context, collection string, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := s.db.Exec(ctx,
		`DELETE FROM documents WHERE collection = $1 AND id = ANY($2)`,
		collection, ids,
	); err != nil {
		return fmt.Errorf("failed to delete from %s: %w", collection, err)
	}
	return nil
}

func scanDocument(row pgx.Row) (*storage.Document, error) {
	var (
		doc         storage.Document
		payload     []byte
		indexedJSON []byte
	)
	if err := row.Scan(&doc.ID, &payload, &indexedJSON); err != nil {
		return nil, err
	}
	doc.Payload = payload
	if err := json.Unmarshal(indexedJSON, &doc.Indexed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal indexed fields: %w", err)
	}
	return &doc, nil
}
