package rag

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DjordjeVuckovic/support-rag/internal/apperr"
	"github.com/DjordjeVuckovic/support-rag/internal/domain"
	"github.com/DjordjeVuckovic/support-rag/internal/llm"
	"github.com/DjordjeVuckovic/support-rag/internal/storage/in_mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEmbedder struct {
	vec []float32
	err error
}

func (s *stubEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return s.vec, s.err
}

type stubCompleter struct {
	reply string
	err   error
	calls int
	last  llm.Request
}

func (s *stubCompleter) Name() string { return "stub" }

func (s *stubCompleter) Complete(ctx context.Context, req llm.Request) (string, error) {
	s.calls++
	s.last = req
	return s.reply, s.err
}

func seededStore(t *testing.T) *in_mem.ChunkStore {
	t.Helper()
	store := in_mem.NewChunkStore()
	err := store.Add(context.Background(), []domain.DocumentChunk{
		{Source: "data/refunds.pdf", Text: "Refunds are accepted within 30 days.", Embedding: []float32{1, 0}},
		{Source: "data/refunds.pdf", Text: "Refunds go to the original payment method.", Embedding: []float32{0.9, 0.1}},
		{Source: "data/shipping.pdf", Text: "Shipping takes 5 business days.", Embedding: []float32{0, 1}},
	})
	require.NoError(t, err)
	return store
}

func TestPipeline_Answer(t *testing.T) {
	completer := &stubCompleter{reply: "  Refunds are accepted within 30 days.  "}
	p := NewPipeline(&stubEmbedder{vec: []float32{1, 0}}, seededStore(t), completer, WithTopK(3))

	history := []domain.Turn{
		{Role: domain.RoleUser, Content: "hi"},
		{Role: domain.RoleAssistant, Content: "hello"},
	}
	got, err := p.Answer(context.Background(), "What is the refund window?", history, "Be kind.")
	require.NoError(t, err)

	assert.Equal(t, "  Refunds are accepted within 30 days.  ", got.Text)
	assert.Equal(t, []string{"data/refunds.pdf", "data/shipping.pdf"}, got.Sources)

	require.Equal(t, 1, completer.calls)
	assert.Equal(t, llm.DefaultTemperature, completer.last.Temperature)
	msgs := completer.last.Messages
	require.Len(t, msgs, 4)
	assert.Equal(t, domain.RoleSystem, msgs[0].Role)
	assert.True(t, strings.HasSuffix(msgs[0].Content, "\n\nPrompt template:\nBe kind."))
	assert.Equal(t, "hi", msgs[1].Content)
	assert.Equal(t, domain.RoleAssistant, msgs[2].Role)
	assert.Equal(t, domain.RoleUser, msgs[3].Role)
	assert.True(t, strings.HasPrefix(msgs[3].Content, "Context:\nSource: data/refunds.pdf\nRefunds are accepted within 30 days."))
	assert.True(t, strings.HasSuffix(msgs[3].Content, "Customer question:\nWhat is the refund window?"))
}

func TestPipeline_EmptyStoreRefusesWithoutGeneration(t *testing.T) {
	completer := &stubCompleter{reply: "should not be used"}
	p := NewPipeline(&stubEmbedder{vec: []float32{1, 0}}, in_mem.NewChunkStore(), completer)

	got, err := p.Answer(context.Background(), "anything?", nil, "")
	require.NoError(t, err)
	assert.Equal(t, domain.RefusalAnswer, got.Text)
	assert.Empty(t, got.Sources)
	assert.NotNil(t, got.Sources)
	assert.Zero(t, completer.calls)
}

func TestPipeline_EmptyCompletion(t *testing.T) {
	p := NewPipeline(&stubEmbedder{vec: []float32{1, 0}}, seededStore(t), &stubCompleter{reply: "   "})

	got, err := p.Answer(context.Background(), "refunds?", nil, "")
	require.NoError(t, err)
	assert.Equal(t, domain.EmptyGenerationAnswer, got.Text)
}

func TestPipeline_ProviderErrorsPropagate(t *testing.T) {
	providerErr := apperr.NewProvider("stub", "complete", errors.New("connection refused"))

	tests := []struct {
		name      string
		embedder  *stubEmbedder
		completer *stubCompleter
	}{
		{
			name:      "embedding failure",
			embedder:  &stubEmbedder{err: apperr.NewProvider("stub", "embed", errors.New("timeout"))},
			completer: &stubCompleter{},
		},
		{
			name:      "generation failure",
			embedder:  &stubEmbedder{vec: []float32{1, 0}},
			completer: &stubCompleter{err: providerErr},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPipeline(tt.embedder, seededStore(t), tt.completer)
			_, err := p.Answer(context.Background(), "refunds?", nil, "")
			require.Error(t, err)

			var pe *apperr.ProviderError
			assert.ErrorAs(t, err, &pe)
		})
	}
}

func TestSystemPrompt(t *testing.T) {
	assert.Equal(t, baseSystemPrompt, SystemPrompt(""))
	assert.Contains(t, SystemPrompt(""), "reply exactly: 'I can only answer from the provided PDF documents.'")
	assert.Equal(t, baseSystemPrompt+"\n\nPrompt template:\nX", SystemPrompt("X"))
}

func TestBuildMessages_DropsSystemHistory(t *testing.T) {
	msgs := BuildMessages("q", nil, []domain.Turn{{Role: domain.RoleSystem, Content: "ignored"}}, "")
	require.Len(t, msgs, 2)
	assert.Equal(t, domain.RoleSystem, msgs[0].Role)
	assert.Equal(t, domain.RoleUser, msgs[1].Role)
}

func TestSortedSources(t *testing.T) {
	chunks := []domain.RetrievedChunk{
		{Source: "b.pdf"}, {Source: "a.pdf"}, {Source: "b.pdf"},
	}
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, SortedSources(chunks))
	assert.Empty(t, SortedSources(nil))
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("RAG_TOP_K", "6")
	t.Setenv("RAG_CHUNK_SIZE", "500")
	t.Setenv("RAG_CHUNK_OVERLAP", "50")

	cfg, err := LoadConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.TopK)
	assert.Equal(t, 500, cfg.Chunking.ChunkSize)
	assert.Equal(t, 50, cfg.Chunking.Overlap)
	assert.Equal(t, "data", cfg.DataDir)

	t.Setenv("RAG_CHUNK_OVERLAP", "600")
	_, err = LoadConfigFromEnv()
	assert.Error(t, err)
}
