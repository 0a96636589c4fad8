package in_mem

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/DjordjeVuckovic/support-rag/internal/storage"
)

type DocumentStore struct {
	storageLock sync.RWMutex
	collections map[string]map[string]storage.Document
	order       map[string][]string
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		collections: make(map[string]map[string]storage.Document),
		order:       make(map[string][]string),
	}
}

func (s *DocumentStore) Put(ctx context.Context, collection, id string, payload []byte, indexed map[string]string) error {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	docs, ok := s.collections[collection]
	if !ok {
		docs = make(map[string]storage.Document)
		s.collections[collection] = docs
	}
	if _, exists := docs[id]; !exists {
		s.order[collection] = append(s.order[collection], id)
	}

	docs[id] = storage.Document{
		ID:      id,
		Payload: slices.Clone(payload),
		Indexed: maps.Clone(indexed),
	}
	return nil
}

func (s *DocumentStore) Get(ctx context.Context, collection, id string) (*storage.Document, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	doc, ok := s.collections[collection][id]
	if !ok {
		return nil, nil
	}
	return &doc, nil
}

// Query returns matches in insertion order.
func (s *DocumentStore) Query(ctx context.Context, collection string, filter storage.Filter) ([]storage.Document, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	docs := s.collections[collection]
	var out []storage.Document
	for _, id := range s.order[collection] {
		if doc := docs[id]; filter.Matches(doc.Indexed) {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (s *DocumentStore) Delete(ctx context.Context, collection string, ids ...string) error {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	docs := s.collections[collection]
	for _, id := range ids {
		delete(docs, id)
	}
	s.order[collection] = slices.DeleteFunc(s.order[collection], func(id string) bool {
		_, ok := docs[id]
		return !ok
	})
	return nil
}
