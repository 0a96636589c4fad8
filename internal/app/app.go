package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/DjordjeVuckovic/support-rag/internal/chat"
	"github.com/DjordjeVuckovic/support-rag/internal/chunker"
	"github.com/DjordjeVuckovic/support-rag/internal/embedding"
	"github.com/DjordjeVuckovic/support-rag/internal/eval"
	"github.com/DjordjeVuckovic/support-rag/internal/ingest"
	"github.com/DjordjeVuckovic/support-rag/internal/llm"
	"github.com/DjordjeVuckovic/support-rag/internal/pdf"
	"github.com/DjordjeVuckovic/support-rag/internal/rag"
	"github.com/DjordjeVuckovic/support-rag/internal/storage/factory"
)

// App owns the storage connections. Providers are built on first use so
// commands that never call a model do not need credentials.
type App struct {
	Config *Config
	Stores *factory.Stores
	Chat   *chat.Store

	embedOnce sync.Once
	embedder  *embedding.Embedder
	embedErr  error
}

func New(ctx context.Context, cfg *Config) (*App, error) {
	stores, err := factory.NewStores(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}

	return &App{
		Config: cfg,
		Stores: stores,
		Chat:   chat.NewStore(stores.Documents, cfg.Storage.Collections),
	}, nil
}

func (a *App) Close() {
	a.Stores.Close()
}

func (a *App) Embedder() (*embedding.Embedder, error) {
	a.embedOnce.Do(func() {
		a.embedder, a.embedErr = embedding.NewFromConfig(a.Config.Embedding)
	})
	return a.embedder, a.embedErr
}

func (a *App) Pipeline(topK int) (*rag.Pipeline, error) {
	embedder, err := a.Embedder()
	if err != nil {
		return nil, err
	}
	completer, err := llm.NewCompleter(a.Config.LLM)
	if err != nil {
		return nil, err
	}

	if topK <= 0 {
		topK = a.Config.RAG.TopK
	}
	return rag.NewPipeline(embedder, a.Stores.Chunks, completer,
		rag.WithTopK(topK),
		rag.WithTemperature(a.Config.LLM.Temperature),
	), nil
}

// Ingester rebuilds the chunk collection from the PDFs under dataDir,
// falling back to the configured data directory.
func (a *App) Ingester(dataDir string) (*ingest.PDFPipeline, error) {
	if dataDir == "" {
		dataDir = a.Config.RAG.DataDir
	}

	embedder, err := a.Embedder()
	if err != nil {
		return nil, err
	}
	splitter, err := chunker.New(a.Config.RAG.Chunking)
	if err != nil {
		return nil, err
	}

	docs := ingest.NewPDFCollector(dataDir, pdf.NewExtractor())
	return ingest.NewPDFPipeline(docs, splitter, embedder, a.Stores.Chunks), nil
}

func (a *App) Evaluator(topK int, dataDir string) (*eval.Evaluator, error) {
	p, err := a.Pipeline(topK)
	if err != nil {
		return nil, err
	}
	ingester, err := a.Ingester(dataDir)
	if err != nil {
		return nil, err
	}
	return eval.NewEvaluator(p, a.Chat, a.Stores.Chunks, ingester), nil
}

func (a *App) ChatService() (*chat.Service, error) {
	p, err := a.Pipeline(0)
	if err != nil {
		return nil, fmt.Errorf("build answer pipeline: %w", err)
	}
	return chat.NewService(a.Chat, p), nil
}
