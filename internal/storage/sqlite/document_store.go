package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/DjordjeVuckovic/support-rag/internal/storage"
)

type DocumentStore struct {
	db *sql.DB
}

func NewDocumentStore(d *DB) *DocumentStore {
	return &DocumentStore{db: d.db}
}

func (s *DocumentStore) Put(ctx context.Context, collection, id string, payload []byte, indexed map[string]string) error {
	if indexed == nil {
		indexed = map[string]string{}
	}
	indexedJSON, err := json.Marshal(indexed)
	if err != nil {
		return fmt.Errorf("failed to marshal indexed fields: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (collection, id, payload, indexed) VALUES (?, ?, ?, ?)
		ON CONFLICT (collection, id) DO UPDATE SET payload = excluded.payload, indexed = excluded.indexed`,
		collection, id, string(payload), string(indexedJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *DocumentStore) Get(ctx context.Context, collection, id string) (*storage.Document, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, payload, indexed FROM documents WHERE collection = ? AND id = ?`, collection, id)

	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s/%s: %w", collection, id, err)
	}
	return doc, nil
}

func (s *DocumentStore) Query(ctx context.Context, collection string, filter storage.Filter) ([]storage.Document, error) {
	if err := filter.ValidateKeys(); err != nil {
		return nil, err
	}

	var (
		b    strings.Builder
		args = []any{collection}
	)
	b.WriteString(`SELECT id, payload, indexed FROM documents WHERE collection = ?`)
	for k, v := range filter {
		b.WriteString(` AND json_extract(indexed, ?) = ?`)
		args = append(args, "$."+k, v)
	}
	b.WriteString(` ORDER BY seq`)

	rows, err := s.db.QueryContext(ctx, b.String(), args...)
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

	args := make([]any, 0, len(ids)+1)
	args = append(args, collection)
	for _, id := range ids {
		args = append(args, id)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")

	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = ? AND id IN (`+placeholders+`)`, args...); err != nil {
		return fmt.Errorf("failed to delete from %s: %w", collection, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*storage.Document, error) {
	var (
		doc              storage.Document
		payload, indexed string
	)
	if err := row.Scan(&doc.ID, &payload, &indexed); err != nil {
		return nil, err
	}
	doc.Payload = json.RawMessage(payload)
	if err := json.Unmarshal([]byte(indexed), &doc.Indexed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal indexed fields: %w", err)
	}
	return &doc, nil
}
