package chat

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/support-rag/internal/domain"
	"github.com/DjordjeVuckovic/support-rag/internal/storage"
)

// SeedTemplates replaces every stored prompt template with the default personas.
func (s *Store) SeedTemplates(ctx context.Context) error {
	existing, err := s.docs.Query(ctx, s.collections.PromptTemplates, nil)
	if err != nil {
		return fmt.Errorf("list prompt templates: %w", err)
	}
	if len(existing) > 0 {
		ids := make([]string, len(existing))
		for i, d := range existing {
			ids[i] = d.ID
		}
		if err := s.docs.Delete(ctx, s.collections.PromptTemplates, ids...); err != nil {
			return fmt.Errorf("delete prompt templates: %w", err)
		}
	}

	now := domain.Now()
	for _, t := range domain.DefaultPromptTemplates() {
		t.CreatedAt = now
		if err := storage.PutJSON(ctx, s.docs, s.collections.PromptTemplates, t.ID, t, nil); err != nil {
			return fmt.Errorf("seed prompt template %s: %w", t.ID, err)
		}
	}

	slog.Info("Prompt templates seeded", "count", len(domain.DefaultPromptTemplates()))
	return nil
}

func (s *Store) ListTemplates(ctx context.Context) ([]domain.PromptTemplate, error) {
	templates, err := storage.QueryJSON[domain.PromptTemplate](ctx, s.docs, s.collections.PromptTemplates, nil)
	if err != nil {
		return nil, fmt.Errorf("list prompt templates: %w", err)
	}
	return templates, nil
}

// GetTemplate returns nil for an empty or unknown id.
func (s *Store) GetTemplate(ctx context.Context, id string) (*domain.PromptTemplate, error) {
	if id == "" {
		return nil, nil
	}
	return storage.GetJSON[domain.PromptTemplate](ctx, s.docs, s.collections.PromptTemplates, id)
}
