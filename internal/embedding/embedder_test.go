package embedding

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/support-rag/internal/apperr"
	"github.com/DjordjeVuckovic/support-rag/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	calls      atomic.Int32
	batchCalls atomic.Int32
	err        error
}

func (s *stubClient) Name() string { return "stub" }

func (s *stubClient) Generate(ctx context.Context, req Request) (*Response, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return &Response{Embedding: []float32{float32(len(req.Text)), 1, 2, 3}}, nil
}

func (s *stubClient) GenerateBatch(ctx context.Context, req BatchRequest) (*BatchResponse, error) {
	s.batchCalls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float32, len(req.Texts))
	for i, p := range req.Texts {
		out[i] = []float32{float32(len(p))}
	}
	return &BatchResponse{Embeddings: out}, nil
}

var noRetry = retry.Config{Attempts: 1}

func TestEmbedder_EmbedQuery_Caches(t *testing.T) {
	client := &stubClient{}
	e := NewEmbedder(client, WithRetry(noRetry), WithCacheTTL(time.Minute))

	first, err := e.EmbedQuery(context.Background(), "refund window")
	require.NoError(t, err)
	second, err := e.EmbedQuery(context.Background(), "  refund window ")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), client.calls.Load())
}

func TestEmbedder_EmbedQuery_CachedVectorIsolated(t *testing.T) {
	e := NewEmbedder(&stubClient{}, WithRetry(noRetry), WithCacheTTL(time.Minute))

	first, err := e.EmbedQuery(context.Background(), "refund window")
	require.NoError(t, err)
	first[0] = -1

	second, err := e.EmbedQuery(context.Background(), "refund window")
	require.NoError(t, err)
	second[1] = -1

	third, err := e.EmbedQuery(context.Background(), "refund window")
	require.NoError(t, err)
	assert.Equal(t, []float32{13, 1, 2, 3}, third)
}

func TestEmbedder_EmbedQuery_NoCache(t *testing.T) {
	client := &stubClient{}
	e := NewEmbedder(client, WithRetry(noRetry), WithCacheTTL(0))

	for i := 0; i < 3; i++ {
		_, err := e.EmbedQuery(context.Background(), "refund window")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), client.calls.Load())
}

func TestEmbedder_MaxLength(t *testing.T) {
	e := NewEmbedder(&stubClient{}, WithRetry(noRetry), WithMaxLength(2))

	vec, err := e.EmbedQuery(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, []float32{3, 1}, vec)
}

func TestEmbedder_ProviderError(t *testing.T) {
	client := &stubClient{err: errors.New("connection refused")}
	e := NewEmbedder(client, WithRetry(retry.Config{Attempts: 2, Delay: time.Millisecond, MaxDelay: time.Millisecond}))

	_, err := e.EmbedQuery(context.Background(), "q")

	var pe *apperr.ProviderError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "stub", pe.Provider)
	assert.Equal(t, int32(2), client.calls.Load())
}

func TestEmbedder_ValidationNotRetried(t *testing.T) {
	client := &stubClient{err: apperr.NewValidation("missing text to embed")}
	e := NewEmbedder(client, WithRetry(retry.Config{Attempts: 3, Delay: time.Millisecond, MaxDelay: time.Millisecond}))

	_, err := e.EmbedQuery(context.Background(), "q")

	var ve *apperr.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, int32(1), client.calls.Load())
}

func TestEmbedder_EmbedTexts_Batches(t *testing.T) {
	client := &stubClient{}
	e := NewEmbedder(client, WithRetry(noRetry), WithBatchSize(2))

	vecs, err := e.EmbedTexts(context.Background(), []string{"a", "bb", "ccc", "dddd", "eeeee"})
	require.NoError(t, err)

	require.Len(t, vecs, 5)
	for i, v := range vecs {
		assert.Equal(t, []float32{float32(i + 1)}, v)
	}
	assert.Equal(t, int32(3), client.batchCalls.Load())
}

func TestOllamaClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embed" {
			http.NotFound(w, r)
			return
		}
		var req ollamaEmbedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "nomic-embed-text", req.Model)

		out := ollamaEmbedResponse{}
		for i := range req.Input {
			out.Embeddings = append(out.Embeddings, []float32{float32(i + 1)})
		}
		_ = json.NewEncoder(w).Encode(out)
	}))
	defer srv.Close()

	client, err := NewOllamaClient(srv.URL)
	require.NoError(t, err)

	one, err := client.Generate(context.Background(), Request{Model: "nomic-embed-text", Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, []float32{1}, one.Embedding)

	batch, err := client.GenerateBatch(context.Background(), BatchRequest{Model: "nomic-embed-text", Texts: []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{1}, {2}}, batch.Embeddings)

	_, err = client.Generate(context.Background(), Request{Model: "nomic-embed-text"})
	var ve *apperr.ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestEmbedder_ClientErrorNotRetried(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	client, err := NewOllamaClient(srv.URL)
	require.NoError(t, err)

	e := NewEmbedder(client, WithModel("missing"), WithRetry(retry.Config{Attempts: 3, Delay: time.Millisecond}))
	_, err = e.EmbedQuery(context.Background(), "hello")

	var pe *apperr.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, int32(1), hits.Load())
}

func TestOpenAIClient_GenerateBatch_ReordersByIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/embeddings", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"object": "list",
			"model": "text-embedding-3-small",
			"data": [
				{"object": "embedding", "index": 1, "embedding": [2.0]},
				{"object": "embedding", "index": 0, "embedding": [1.0]}
			]
		}`))
	}))
	defer srv.Close()

	client, err := NewOpenAIClient("test-key", srv.URL+"/v1")
	require.NoError(t, err)

	resp, err := client.GenerateBatch(context.Background(), BatchRequest{Model: "text-embedding-3-small", Texts: []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{1}, {2}}, resp.Embeddings)
}

func TestNewFromConfig(t *testing.T) {
	_, err := NewFromConfig(Config{Provider: "openai"})
	var ce *apperr.ConfigurationError
	require.True(t, errors.As(err, &ce))

	e, err := NewFromConfig(Config{Provider: "ollama", BaseURL: "http://localhost:11434", Model: "nomic-embed-text"})
	require.NoError(t, err)
	assert.Equal(t, "nomic-embed-text", e.Model())

	_, err = NewFromConfig(Config{Provider: "cohere"})
	assert.True(t, errors.As(err, &ce))
}
