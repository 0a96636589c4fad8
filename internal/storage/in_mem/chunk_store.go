package in_mem

import (
	"context"
	"log/slog"
	"sync"

	"github.com/DjordjeVuckovic/support-rag/internal/domain"
	"github.com/DjordjeVuckovic/support-rag/internal/storage"
	"github.com/google/uuid"
)

type ChunkStore struct {
	storageLock sync.RWMutex
	chunks      []domain.DocumentChunk
}

func NewChunkStore() *ChunkStore {
	return &ChunkStore{}
}

func (s *ChunkStore) Add(ctx context.Context, chunks []domain.DocumentChunk) error {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	for _, c := range chunks {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		s.chunks = append(s.chunks, c)
	}
	slog.Debug("Chunks added to in-memory store", "count", len(chunks), "total", len(s.chunks))

	return nil
}

func (s *ChunkStore) Query(ctx context.Context, embedding []float32, k int) ([]domain.RetrievedChunk, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	return storage.NearestChunks(s.chunks, embedding, k), nil
}

func (s *ChunkStore) DeleteAll(ctx context.Context) error {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	s.chunks = nil
	return nil
}

func (s *ChunkStore) ListIDs(ctx context.Context) ([]string, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	ids := make([]string, len(s.chunks))
	for i, c := range s.chunks {
		ids[i] = c.ID.String()
	}
	return ids, nil
}
