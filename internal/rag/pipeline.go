// Package rag answers questions strictly from chunks retrieved out of the vector store.
package rag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/support-rag/internal/domain"
	"github.com/DjordjeVuckovic/support-rag/internal/llm"
	"github.com/DjordjeVuckovic/support-rag/internal/observability"
	"github.com/DjordjeVuckovic/support-rag/internal/storage"
)

// QueryEmbedder turns a question into the vector space of the stored chunks.
type QueryEmbedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

type Pipeline struct {
	embedder    QueryEmbedder
	store       storage.ChunkStore
	completer   llm.Completer
	topK        int
	temperature float32
}

type Option func(p *Pipeline)

func WithTopK(k int) Option {
	return func(p *Pipeline) {
		if k > 0 {
			p.topK = k
		}
	}
}

func WithTemperature(t float32) Option {
	return func(p *Pipeline) {
		p.temperature = t
	}
}

func NewPipeline(embedder QueryEmbedder, store storage.ChunkStore, completer llm.Completer, opts ...Option) *Pipeline {
	p := &Pipeline{
		embedder:    embedder,
		store:       store,
		completer:   completer,
		topK:        DefaultTopK,
		temperature: llm.DefaultTemperature,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pipeline) TopK() int {
	return p.topK
}

// Retrieve embeds the question and returns up to topK nearest chunks.
// A non-positive topK falls back to the configured default.
func (p *Pipeline) Retrieve(ctx context.Context, question string, topK int) ([]domain.RetrievedChunk, error) {
	if topK <= 0 {
		topK = p.topK
	}

	start := time.Now()
	vec, err := p.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	chunks, err := p.store.Query(ctx, vec, topK)
	if err != nil {
		return nil, fmt.Errorf("query chunks: %w", err)
	}
	observability.ObserveRetrieval(time.Since(start))

	slog.Debug("Retrieved chunks", "count", len(chunks), "top_k", topK)
	return chunks, nil
}

// Generate produces an answer from the given chunks.
// Without chunks it returns the refusal text and makes no provider call.
func (p *Pipeline) Generate(ctx context.Context, question string, chunks []domain.RetrievedChunk, history []domain.Turn, template string) (string, error) {
	if len(chunks) == 0 {
		return domain.RefusalAnswer, nil
	}

	start := time.Now()
	out, err := p.completer.Complete(ctx, llm.Request{
		Messages:    BuildMessages(question, chunks, history, template),
		Temperature: p.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}
	observability.ObserveGeneration(time.Since(start))

	if strings.TrimSpace(out) == "" {
		return domain.EmptyGenerationAnswer, nil
	}
	return out, nil
}

// Answer runs retrieval and generation for one interactive question.
// Provider failures propagate to the caller.
func (p *Pipeline) Answer(ctx context.Context, question string, history []domain.Turn, template string) (domain.Answer, error) {
	chunks, err := p.Retrieve(ctx, question, p.topK)
	if err != nil {
		observability.RecordAnswer(observability.OutcomeFailed)
		return domain.Answer{}, err
	}

	if len(chunks) == 0 {
		observability.RecordAnswer(observability.OutcomeRefused)
		return domain.Answer{Text: domain.RefusalAnswer, Sources: []string{}}, nil
	}

	text, err := p.Generate(ctx, question, chunks, history, template)
	if err != nil {
		observability.RecordAnswer(observability.OutcomeFailed)
		return domain.Answer{}, err
	}

	observability.RecordAnswer(observability.OutcomeAnswered)
	return domain.Answer{Text: text, Sources: SortedSources(chunks)}, nil
}
