package es

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/support-rag/internal/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/core/search"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/refresh"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
)

const maxQuerySize = 10000

type storedDocument struct {
	ID      string            `json:"id"`
	Seq     int64             `json:"seq"`
	Payload json.RawMessage   `json:"payload"`
	Indexed map[string]string `json:"indexed"`
}

// DocumentStore keeps one index per collection.
// Writes use refresh=true so reads observe them immediately.
type DocumentStore struct {
	client *elasticsearch.TypedClient
	prefix string

	mu      sync.Mutex
	ensured map[string]bool
}

func NewDocumentStore(client *elasticsearch.TypedClient, prefix string) *DocumentStore {
	return &DocumentStore{
		client:  client,
		prefix:  prefix,
		ensured: make(map[string]bool),
	}
}

func (s *DocumentStore) indexFor(ctx context.Context, collection string) (string, error) {
	name := s.prefix + collection

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ensured[name] {
		return name, nil
	}
	if err := ensureIndex(ctx, s.client, name, documentMapping()); err != nil {
		return "", err
	}
	s.ensured[name] = true
	return name, nil
}

func (s *DocumentStore) Put(ctx context.Context, collection, id string, payload []byte, indexed map[string]string) error {
	index, err := s.indexFor(ctx, collection)
	if err != nil {
		return err
	}

	seq := time.Now().UnixNano()
	existing, err := s.get(ctx, index, id)
	if err != nil {
		return err
	}
	if existing != nil {
		seq = existing.Seq
	}

	doc := storedDocument{ID: id, Seq: seq, Payload: payload, Indexed: indexed}
	if _, err := s.client.Index(index).Id(id).Document(doc).Refresh(refresh.True).Do(ctx); err != nil {
		return fmt.Errorf("failed to index %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *DocumentStore) Get(ctx context.Context, collection, id string) (*storage.Document, error) {
	index, err := s.indexFor(ctx, collection)
	if err != nil {
		return nil, err
	}

	doc, err := s.get(ctx, index, id)
	if err != nil || doc == nil {
		return nil, err
	}
	return doc.toDocument(), nil
}

func (s *DocumentStore) get(ctx context.Context, index, id string) (*storedDocument, error) {
	res, err := s.client.Get(index, id).Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s/%s: %w", index, id, err)
	}
	if !res.Found {
		return nil, nil
	}

	var doc storedDocument
	if err := json.Unmarshal(res.Source_, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s/%s: %w", index, id, err)
	}
	return &doc, nil
}

func (s *DocumentStore) Query(ctx context.Context, collection string, filter storage.Filter) ([]storage.Document, error) {
	if err := filter.ValidateKeys(); err != nil {
		return nil, err
	}
	index, err := s.indexFor(ctx, collection)
	if err != nil {
		return nil, err
	}

	query := &types.Query{MatchAll: &types.MatchAllQuery{}}
	if len(filter) > 0 {
		terms := make([]types.Query, 0, len(filter))
		for k, v := range filter {
			terms = append(terms, types.Query{
				Term: map[string]types.TermQuery{"indexed." + k: {Value: v}},
			})
		}
		query = &types.Query{Bool: &types.BoolQuery{Filter: terms}}
	}

	asc := sortorder.Asc
	size := maxQuerySize
	res, err := s.client.Search().
		Index(index).
		Request(&search.Request{
			Query: query,
			Size:  &size,
			Sort: []types.SortCombinations{
				types.SortOptions{SortOptions: map[string]types.FieldSort{"seq": {Order: &asc}}},
			},
		}).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}

	out := make([]storage.Document, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var doc storedDocument
		if err := json.Unmarshal(hit.Source_, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s hit: %w", collection, err)
		}
		out = append(out, *doc.toDocument())
	}
	return out, nil
}

func (s *DocumentStore) Delete(ctx context.Context, collection string, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	index, err := s.indexFor(ctx, collection)
	if err != nil {
		return err
	}

	refreshAfter := true
	if _, err := s.client.DeleteByQuery(index).
		Query(&types.Query{Ids: &types.IdsQuery{Values: ids}}).
		Refresh(refreshAfter).
		Do(ctx); err != nil {
		return fmt.Errorf("failed to delete from %s: %w", collection, err)
	}
	return nil
}

func (d storedDocument) toDocument() *storage.Document {
	return &storage.Document{ID: d.ID, Payload: d.Payload, Indexed: d.Indexed}
}
