package es

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

func ensureIndex(ctx context.Context, client *elasticsearch.TypedClient, name string, mapping types.TypeMapping) error {
	exists, err := client.Indices.Exists(name).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}
	if exists {
		slog.Debug("Index already exists", "index", name)
		return nil
	}

	res, err := client.Indices.Create(name).Mappings(&mapping).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index %s: %w", name, err)
	}
	if !res.Acknowledged {
		return fmt.Errorf("index creation was not acknowledged: %s", name)
	}

	slog.Info("Index created successfully", "index", name)
	return nil
}

func refreshIndex(ctx context.Context, client *elasticsearch.TypedClient, name string) error {
	if _, err := client.Indices.Refresh().Index(name).Do(ctx); err != nil {
		return fmt.Errorf("failed to refresh index %s: %w", name, err)
	}
	return nil
}

// chunkMapping leaves the dense_vector dims unset; they are fixed by the first indexed chunk.
func chunkMapping() types.TypeMapping {
	indexed := true
	vector := types.NewDenseVectorProperty()
	vector.Index = &indexed

	return types.TypeMapping{
		Properties: map[string]types.Property{
			"id":         types.NewKeywordProperty(),
			"source":     types.NewKeywordProperty(),
			"chunk_text": types.NewTextProperty(),
			"embedding":  vector,
		},
	}
}

func documentMapping() types.TypeMapping {
	enabled := false
	payload := types.NewObjectProperty()
	payload.Enabled = &enabled

	return types.TypeMapping{
		Properties: map[string]types.Property{
			"id":      types.NewKeywordProperty(),
			"seq":     types.NewLongNumberProperty(),
			"payload": payload,
			"indexed": types.NewFlattenedProperty(),
		},
	}
}
