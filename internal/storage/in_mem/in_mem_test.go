package in_mem

import (
	"context"
	"sync"
	"testing"

	"github.com/DjordjeVuckovic/support-rag/internal/domain"
	"github.com/DjordjeVuckovic/support-rag/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkStore(t *testing.T) {
	ctx := context.Background()
	s := NewChunkStore()

	err := s.Add(ctx, []domain.DocumentChunk{
		{Source: "data/policy.pdf", Text: "Refunds are accepted within 30 days", Embedding: []float32{1, 0, 0}},
		{Source: "data/shipping.pdf", Text: "Shipping takes 5 days", Embedding: []float32{0, 1, 0}},
	})
	require.NoError(t, err)

	ids, err := s.ListIDs(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	got, err := s.Query(ctx, []float32{0.9, 0.1, 0}, 4)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "data/policy.pdf", got[0].Source)
	assert.Equal(t, "Refunds are accepted within 30 days", got[0].Text)

	require.NoError(t, s.DeleteAll(ctx))
	ids, err = s.ListIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	got, err = s.Query(ctx, []float32{1, 0, 0}, 4)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestChunkStore_ConcurrentAdd(t *testing.T) {
	ctx := context.Background()
	s := NewChunkStore()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Add(ctx, []domain.DocumentChunk{{Source: "a.pdf", Text: "x", Embedding: []float32{1}}})
		}()
	}
	wg.Wait()

	ids, err := s.ListIDs(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, 10)
}

func TestDocumentStore(t *testing.T) {
	ctx := context.Background()
	s := NewDocumentStore()

	require.NoError(t, s.Put(ctx, "chats", "c1", []byte(`{"id":"c1","title":"a"}`), map[string]string{"user_id": "u1"}))
	require.NoError(t, s.Put(ctx, "chats", "c2", []byte(`{"id":"c2","title":"b"}`), map[string]string{"user_id": "u2"}))
	require.NoError(t, s.Put(ctx, "chats", "c3", []byte(`{"id":"c3","title":"c"}`), map[string]string{"user_id": "u1"}))

	doc, err := s.Get(ctx, "chats", "c2")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.JSONEq(t, `{"id":"c2","title":"b"}`, string(doc.Payload))

	missing, err := s.Get(ctx, "chats", "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	docs, err := s.Query(ctx, "chats", storage.Filter{"user_id": "u1"})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "c1", docs[0].ID)
	assert.Equal(t, "c3", docs[1].ID)

	// replace keeps position
	require.NoError(t, s.Put(ctx, "chats", "c1", []byte(`{"id":"c1","title":"renamed"}`), map[string]string{"user_id": "u1"}))
	docs, err = s.Query(ctx, "chats", nil)
	require.NoError(t, err)
	assert.Len(t, docs, 3)
	assert.JSONEq(t, `{"id":"c1","title":"renamed"}`, string(docs[0].Payload))

	require.NoError(t, s.Delete(ctx, "chats", "c1", "c3"))
	docs, err = s.Query(ctx, "chats", nil)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "c2", docs[0].ID)
}

type chat struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	s := NewDocumentStore()

	require.NoError(t, storage.PutJSON(ctx, s, "chats", "c1", chat{ID: "c1", Title: "New Chat"}, map[string]string{"user_id": "u1"}))

	got, err := storage.GetJSON[chat](ctx, s, "chats", "c1")
	require.NoError(t, err)
	assert.Equal(t, &chat{ID: "c1", Title: "New Chat"}, got)

	none, err := storage.GetJSON[chat](ctx, s, "chats", "c9")
	require.NoError(t, err)
	assert.Nil(t, none)

	all, err := storage.QueryJSON[chat](ctx, s, "chats", storage.Filter{"user_id": "u1"})
	require.NoError(t, err)
	assert.Equal(t, []chat{{ID: "c1", Title: "New Chat"}}, all)
}
