package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/support-rag/internal/domain"
	"github.com/DjordjeVuckovic/support-rag/internal/ingest/collector"
	"github.com/DjordjeVuckovic/support-rag/internal/observability"
	"github.com/DjordjeVuckovic/support-rag/internal/storage"
	"github.com/google/uuid"
)

type TextEmbedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

type TextSplitter interface {
	Split(text string) []string
}

// PDFPipeline clears the chunk collection and re-indexes every collected document.
type PDFPipeline struct {
	collector collector.Collector[domain.SourceDocument]
	splitter  TextSplitter
	embedder  TextEmbedder
	store     storage.ChunkStore
}

func NewPDFPipeline(
	c collector.Collector[domain.SourceDocument],
	splitter TextSplitter,
	embedder TextEmbedder,
	store storage.ChunkStore,
) *PDFPipeline {
	return &PDFPipeline{
		collector: c,
		splitter:  splitter,
		embedder:  embedder,
		store:     store,
	}
}

func (p *PDFPipeline) Run(ctx context.Context) (Summary, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var summary Summary

	if err := p.store.DeleteAll(ctx); err != nil {
		return summary, fmt.Errorf("clear chunk collection: %w", err)
	}

	results, err := p.collector.Collect(ctx)
	if err != nil {
		return summary, fmt.Errorf("collect documents: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		case res, ok := <-results:
			if !ok {
				slog.Info("Ingestion complete", "files", summary.Files, "chunks", summary.Chunks, "skipped", summary.Skipped)
				return summary, nil
			}

			summary.Files++
			if res.Err != nil {
				slog.Warn("Skipping unreadable document", "error", res.Err)
				summary.Skipped++
				continue
			}

			n, err := p.index(ctx, res.Result)
			if err != nil {
				return summary, err
			}
			if n == 0 {
				summary.Skipped++
				continue
			}
			summary.Chunks += n
		}
	}
}

func (p *PDFPipeline) index(ctx context.Context, doc domain.SourceDocument) (int, error) {
	texts := p.splitter.Split(doc.Text)
	if len(texts) == 0 {
		slog.Debug("Document has no text", "source", doc.Source)
		return 0, nil
	}

	vectors, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed %s: %w", doc.Source, err)
	}
	if len(vectors) != len(texts) {
		return 0, fmt.Errorf("embed %s: expected %d vectors, got %d", doc.Source, len(texts), len(vectors))
	}

	chunks := make([]domain.DocumentChunk, len(texts))
	for i, text := range texts {
		chunks[i] = domain.DocumentChunk{
			ID:        uuid.New(),
			Source:    doc.Source,
			Text:      text,
			Embedding: vectors[i],
		}
	}

	if err := p.store.Add(ctx, chunks); err != nil {
		return 0, fmt.Errorf("store chunks of %s: %w", doc.Source, err)
	}
	observability.IngestedChunksTotal.Add(float64(len(chunks)))

	slog.Debug("Indexed document", "source", doc.Source, "chunks", len(chunks))
	return len(chunks), nil
}
