package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/DjordjeVuckovic/support-rag/internal/domain"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/elastic/go-elasticsearch/v8/typedapi/core/search"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/google/uuid"
)

const listPageSize = 1000

type chunkDocument struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Text      string    `json:"chunk_text"`
	Embedding []float32 `json:"embedding,omitempty"`
}

// ChunkStore ranks chunks with an approximate kNN search over a cosine dense_vector field.
type ChunkStore struct {
	client    *elasticsearch.TypedClient
	indexName string
}

func NewChunkStore(ctx context.Context, client *elasticsearch.TypedClient, indexName string) (*ChunkStore, error) {
	s := &ChunkStore{client: client, indexName: indexName}
	if err := ensureIndex(ctx, client, indexName, chunkMapping()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ChunkStore) Add(ctx context.Context, chunks []domain.DocumentChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         s.indexName,
		Client:        s.client,
		NumWorkers:    4,
		FlushBytes:    5e+6,
		FlushInterval: 30 * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to create bulk indexer: %w", err)
	}

	var successful, failed atomic.Int64
	for _, c := range chunks {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		doc := chunkDocument{ID: c.ID.String(), Source: c.Source, Text: c.Text, Embedding: c.Embedding}

		body, err := json.Marshal(doc)
		if err != nil {
			failed.Add(1)
			slog.Error("failed to marshal chunk", "error", err, "id", doc.ID)
			continue
		}

		err = bi.Add(ctx, esutil.BulkIndexerItem{
			Action:     "index",
			DocumentID: doc.ID,
			Body:       bytes.NewReader(body),
			OnSuccess: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem) {
				successful.Add(1)
			},
			OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
				failed.Add(1)
				if err != nil {
					slog.Error("bulk index error", "error", err, "id", item.DocumentID)
				} else {
					slog.Error("bulk index error", "status", res.Status, "error", res.Error.Type, "reason", res.Error.Reason, "id", item.DocumentID)
				}
			},
		})
		if err != nil {
			failed.Add(1)
			slog.Error("failed to add chunk to bulk indexer", "error", err, "id", doc.ID)
		}
	}

	if err := bi.Close(ctx); err != nil {
		return fmt.Errorf("failed to close bulk indexer: %w", err)
	}

	slog.Info("Bulk chunk indexing completed",
		"successful", successful.Load(),
		"failed", failed.Load(),
		"total", len(chunks),
		"index", s.indexName)

	if n := failed.Load(); n > 0 {
		return fmt.Errorf("failed to index %d out of %d chunks", n, len(chunks))
	}

	return refreshIndex(ctx, s.client, s.indexName)
}

func (s *ChunkStore) Query(ctx context.Context, embedding []float32, k int) ([]domain.RetrievedChunk, error) {
	if k <= 0 {
		return []domain.RetrievedChunk{}, nil
	}

	candidates := max(k*10, 100)
	res, err := s.client.Search().
		Index(s.indexName).
		Request(&search.Request{
			Knn: []types.KnnSearch{{
				Field:         "embedding",
				QueryVector:   embedding,
				K:             &k,
				NumCandidates: &candidates,
			}},
			Size:    &k,
			Source_: []string{"id", "source", "chunk_text"},
		}).
		Do(ctx)
	if err != nil {
		slog.Error("Elasticsearch knn query failed", "error", err, "index", s.indexName)
		return nil, fmt.Errorf("failed to execute knn search: %w", err)
	}

	out := make([]domain.RetrievedChunk, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var doc chunkDocument
		if err := json.Unmarshal(hit.Source_, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal chunk: %w", err)
		}

		var distance *float64
		if hit.Score_ != nil {
			d := scoreToDistance(float64(*hit.Score_))
			distance = &d
		}
		out = append(out, domain.NewRetrievedChunk(doc.Source, doc.Text, distance))
	}

	return out, nil
}

// DeleteAll drops and recreates the index so a new embedding dimension can be used.
func (s *ChunkStore) DeleteAll(ctx context.Context) error {
	exists, err := s.client.Indices.Exists(s.indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}
	if exists {
		if _, err := s.client.Indices.Delete(s.indexName).Do(ctx); err != nil {
			return fmt.Errorf("failed to delete index %s: %w", s.indexName, err)
		}
	}
	return ensureIndex(ctx, s.client, s.indexName, chunkMapping())
}

func (s *ChunkStore) ListIDs(ctx context.Context) ([]string, error) {
	asc := sortorder.Asc
	size := listPageSize

	var (
		ids   []string
		after []types.FieldValue
	)
	for {
		req := s.client.Search().
			Index(s.indexName).
			Request(&search.Request{
				Query:   &types.Query{MatchAll: &types.MatchAllQuery{}},
				Size:    &size,
				Source_: []string{"id"},
				Sort: []types.SortCombinations{
					types.SortOptions{SortOptions: map[string]types.FieldSort{"id": {Order: &asc}}},
				},
				SearchAfter: after,
			})

		res, err := req.Do(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list chunk ids: %w", err)
		}

		for _, hit := range res.Hits.Hits {
			var doc chunkDocument
			if err := json.Unmarshal(hit.Source_, &doc); err != nil {
				return nil, fmt.Errorf("failed to unmarshal chunk: %w", err)
			}
			ids = append(ids, doc.ID)
		}

		if len(res.Hits.Hits) < size {
			return ids, nil
		}
		after = res.Hits.Hits[len(res.Hits.Hits)-1].Sort
	}
}

// scoreToDistance inverts the cosine similarity score, which is (1 + cos) / 2.
func scoreToDistance(score float64) float64 {
	return 2 * (1 - score)
}
