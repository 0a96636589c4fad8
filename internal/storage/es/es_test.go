package es

import (
	"context"
	"testing"

	"github.com/DjordjeVuckovic/support-rag/internal/domain"
	"github.com/DjordjeVuckovic/support-rag/internal/storage"
	pkgtesting "github.com/DjordjeVuckovic/support-rag/pkg/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreToDistance(t *testing.T) {
	assert.InDelta(t, 0.0, scoreToDistance(1.0), 1e-9)
	assert.InDelta(t, 1.0, scoreToDistance(0.5), 1e-9)
	assert.InDelta(t, 2.0, scoreToDistance(0.0), 1e-9)
}

func TestStores_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping elasticsearch container test in short mode")
	}

	ctx := context.Background()
	container := pkgtesting.NewESContainer(ctx, t)

	client, err := NewClient(ClientConfig{Addresses: []string{container.Address}, IndexPrefix: "test_"})
	require.NoError(t, err)
	assert.True(t, NewHealthChecker(client).Healthy(ctx))

	t.Run("chunks", func(t *testing.T) {
		s, err := NewChunkStore(ctx, client, "test_document_chunks")
		require.NoError(t, err)

		err = s.Add(ctx, []domain.DocumentChunk{
			{Source: "data/refunds.pdf", Text: "Refunds within 30 days", Embedding: []float32{1, 0, 0}},
			{Source: "data/shipping.pdf", Text: "Shipping in 5 days", Embedding: []float32{0, 1, 0}},
		})
		require.NoError(t, err)

		ids, err := s.ListIDs(ctx)
		require.NoError(t, err)
		assert.Len(t, ids, 2)

		got, err := s.Query(ctx, []float32{1, 0.1, 0}, 1)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "data/refunds.pdf", got[0].Source)

		require.NoError(t, s.DeleteAll(ctx))
		ids, err = s.ListIDs(ctx)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("documents", func(t *testing.T) {
		s := NewDocumentStore(client, "test_")

		require.NoError(t, s.Put(ctx, "chats", "c1", []byte(`{"id":"c1"}`), map[string]string{"user_id": "u1"}))
		require.NoError(t, s.Put(ctx, "chats", "c2", []byte(`{"id":"c2"}`), map[string]string{"user_id": "u2"}))

		doc, err := s.Get(ctx, "chats", "c1")
		require.NoError(t, err)
		require.NotNil(t, doc)
		assert.JSONEq(t, `{"id":"c1"}`, string(doc.Payload))

		missing, err := s.Get(ctx, "chats", "c9")
		require.NoError(t, err)
		assert.Nil(t, missing)

		docs, err := s.Query(ctx, "chats", storage.Filter{"user_id": "u2"})
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "c2", docs[0].ID)

		require.NoError(t, s.Delete(ctx, "chats", "c1"))
		docs, err = s.Query(ctx, "chats", nil)
		require.NoError(t, err)
		require.Len(t, docs, 1)
	})
}
