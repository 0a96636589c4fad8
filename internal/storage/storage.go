package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/DjordjeVuckovic/support-rag/internal/domain"
)

// ChunkStore is the vector collection holding document chunks.
type ChunkStore interface {
	Add(ctx context.Context, chunks []domain.DocumentChunk) error
	// Query returns up to k chunks ordered by ascending distance.
	Query(ctx context.Context, embedding []float32, k int) ([]domain.RetrievedChunk, error)
	DeleteAll(ctx context.Context) error
	ListIDs(ctx context.Context) ([]string, error)
}

// Filter matches documents whose indexed fields equal every given value.
type Filter map[string]string

type Document struct {
	ID      string
	Payload json.RawMessage
	Indexed map[string]string
}

// DocumentStore keeps whole records as JSON payloads next to a small set of indexed fields.
// Put replaces any existing document with the same id.
type DocumentStore interface {
	Put(ctx context.Context, collection, id string, payload []byte, indexed map[string]string) error
	Get(ctx context.Context, collection, id string) (*Document, error)
	Query(ctx context.Context, collection string, filter Filter) ([]Document, error)
	Delete(ctx context.Context, collection string, ids ...string) error
}

type Collections struct {
	Users           string `env:"USERS" envDefault:"users"`
	Chats           string `env:"CHATS" envDefault:"chats"`
	Messages        string `env:"MESSAGES" envDefault:"messages"`
	Documents       string `env:"DOCUMENTS" envDefault:"document_chunks"`
	PromptTemplates string `env:"PROMPT_TEMPLATES" envDefault:"prompt_templates"`
}

func DefaultCollections() Collections {
	return Collections{
		Users:           "users",
		Chats:           "chats",
		Messages:        "messages",
		Documents:       "document_chunks",
		PromptTemplates: "prompt_templates",
	}
}

type Type string

const (
	ES     Type = "es"
	PG     Type = "pg"
	InMem  Type = "in_mem"
	SQLite Type = "sqlite"
)

func (t Type) Valid() bool {
	switch t {
	case ES, PG, InMem, SQLite:
		return true
	}
	return false
}

type StorerError string

const (
	ErrUnsupportedStorer StorerError = "unsupported storage type: %s"
	ErrInvalidFilterKey  StorerError = "invalid filter key: %q"
)

func (e StorerError) Error() string {
	return string(e)
}

// PutJSON marshals v and stores it under id.
func PutJSON[T any](ctx context.Context, s DocumentStore, collection, id string, v T, indexed map[string]string) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s/%s: %w", collection, id, err)
	}
	return s.Put(ctx, collection, id, data, indexed)
}

// GetJSON loads and decodes one document. It returns nil when the id is absent.
func GetJSON[T any](ctx context.Context, s DocumentStore, collection, id string) (*T, error) {
	doc, err := s.Get(ctx, collection, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal(doc.Payload, &v); err != nil {
		return nil, fmt.Errorf("unmarshal %s/%s: %w", collection, id, err)
	}
	return &v, nil
}

func QueryJSON[T any](ctx context.Context, s DocumentStore, collection string, filter Filter) ([]T, error) {
	docs, err := s.Query(ctx, collection, filter)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		var v T
		if err := json.Unmarshal(d.Payload, &v); err != nil {
			return nil, fmt.Errorf("unmarshal %s/%s: %w", collection, d.ID, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Matches reports whether indexed satisfies every entry of the filter.
func (f Filter) Matches(indexed map[string]string) bool {
	for k, v := range f {
		if got, ok := indexed[k]; !ok || got != v {
			return false
		}
	}
	return true
}

// ValidateKeys rejects keys that are unsafe to splice into backend query paths.
func (f Filter) ValidateKeys() error {
	for k := range f {
		if !isFieldName(k) {
			return fmt.Errorf(string(ErrInvalidFilterKey), k)
		}
	}
	return nil
}

func isFieldName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return false
		}
	}
	return true
}
