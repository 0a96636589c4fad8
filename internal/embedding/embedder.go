package embedding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/support-rag/internal/apperr"
	"github.com/DjordjeVuckovic/support-rag/internal/observability"
	"github.com/DjordjeVuckovic/support-rag/pkg/httpjson"
	"github.com/DjordjeVuckovic/support-rag/pkg/retry"
	"github.com/patrickmn/go-cache"
)

const (
	defaultBatchSize = 64
	defaultCacheTTL  = 10 * time.Minute
)

type Embedder struct {
	maxLength *int
	model     string
	batchSize int
	retry     retry.Config
	cacheTTL  time.Duration

	client Client
	cache  *cache.Cache
}

type EmbedderOption func(e *Embedder)

func NewEmbedder(client Client, opts ...EmbedderOption) *Embedder {
	base := &Embedder{
		model:     defaultModel,
		batchSize: defaultBatchSize,
		retry:     retry.DefaultConfig(),
		cacheTTL:  defaultCacheTTL,
		client:    client,
	}

	for _, opt := range opts {
		opt(base)
	}

	if base.cacheTTL > 0 {
		base.cache = cache.New(base.cacheTTL, 2*base.cacheTTL)
	}

	return base
}

func WithModel(model string) EmbedderOption {
	return func(e *Embedder) {
		e.model = model
	}
}

func WithMaxLength(length int) EmbedderOption {
	return func(e *Embedder) {
		e.maxLength = &length
	}
}

func WithBatchSize(size int) EmbedderOption {
	return func(e *Embedder) {
		if size > 0 {
			e.batchSize = size
		}
	}
}

func WithRetry(cfg retry.Config) EmbedderOption {
	return func(e *Embedder) {
		e.retry = cfg
	}
}

// WithCacheTTL sets how long query embeddings are memoized. Zero disables the cache.
func WithCacheTTL(ttl time.Duration) EmbedderOption {
	return func(e *Embedder) {
		e.cacheTTL = ttl
	}
}

func (e *Embedder) Model() string {
	return e.model
}

// EmbedQuery embeds a single question. Results are cached per model and text.
func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	text = strings.TrimSpace(text)
	key := e.model + "\x00" + text

	if e.cache != nil {
		if v, ok := e.cache.Get(key); ok {
			slog.Debug("query embedding cache hit", "model", e.model)
			return slices.Clone(v.([]float32)), nil
		}
	}

	resp, err := retry.Do(ctx, e.retry, func() (*Response, error) {
		r, err := e.client.Generate(ctx, Request{Model: e.model, Text: text})
		return r, permanentIfInvalid(err)
	})
	if err != nil {
		return nil, e.providerErr("embed", err)
	}

	vec := e.truncate(resp.Embedding)
	if e.cache != nil {
		e.cache.SetDefault(key, slices.Clone(vec))
	}

	slog.Debug("Generated embedding", "embedding_length", len(vec), "model", e.model)
	return vec, nil
}

// EmbedTexts embeds chunk texts in batches, preserving input order.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += e.batchSize {
		end := min(start+e.batchSize, len(texts))
		batch := texts[start:end]

		slog.Debug("Bulk embedding texts", "count", len(batch), "offset", start)

		resp, err := retry.Do(ctx, e.retry, func() (*BatchResponse, error) {
			r, err := e.client.GenerateBatch(ctx, BatchRequest{Model: e.model, Texts: batch})
			return r, permanentIfInvalid(err)
		})
		if err != nil {
			return nil, e.providerErr("embed_batch", err)
		}

		if len(resp.Embeddings) != len(batch) {
			return nil, e.providerErr("embed_batch", fmt.Errorf("expected %d embeddings, got %d", len(batch), len(resp.Embeddings)))
		}

		for _, emb := range resp.Embeddings {
			out = append(out, e.truncate(emb))
		}
	}

	slog.Debug("Generated bulk embeddings", "count", len(out), "model", e.model)
	return out, nil
}

func (e *Embedder) truncate(vec []float32) []float32 {
	if e.maxLength != nil && len(vec) > *e.maxLength {
		return vec[:*e.maxLength]
	}
	return vec
}

func (e *Embedder) providerErr(op string, err error) error {
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		return err
	}
	observability.RecordProviderError(e.client.Name(), op)
	return apperr.NewProvider(e.client.Name(), op, err)
}

func permanentIfInvalid(err error) error {
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		return retry.NewPermanent(err)
	}
	var se *httpjson.StatusError
	if errors.As(err, &se) && se.Permanent() {
		return retry.NewPermanent(err)
	}
	return err
}
