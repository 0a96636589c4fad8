package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/support-rag/internal/chunker"
	"github.com/DjordjeVuckovic/support-rag/internal/domain"
	"github.com/DjordjeVuckovic/support-rag/internal/ingest/collector"
	"github.com/DjordjeVuckovic/support-rag/internal/storage/in_mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExtractor struct {
	pages map[string][]string
}

func (s stubExtractor) ExtractPages(path string) ([]string, error) {
	p, ok := s.pages[filepath.Base(path)]
	if !ok {
		return nil, errors.New("corrupt pdf")
	}
	return p, nil
}

type stubEmbedder struct {
	calls int
	err   error
}

func (s *stubEmbedder) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{float32(i), 1}
	}
	return out, nil
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("%PDF"), 0644))
}

func TestJoinPages(t *testing.T) {
	assert.Equal(t, "a\nb", JoinPages([]string{"  a ", "", "   ", "b"}))
	assert.Equal(t, "", JoinPages(nil))
}

func TestPDFCollector_WalksRecursivelyWithRelativeSources(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	touch(t, filepath.Join(dir, "refunds.pdf"))
	touch(t, filepath.Join(dir, "policies", "SHIPPING.PDF"))
	touch(t, filepath.Join(dir, "notes.txt"))

	c := NewPDFCollector(dir, stubExtractor{pages: map[string][]string{
		"refunds.pdf":  {"Refunds take 5 days."},
		"SHIPPING.PDF": {"Ships in 2 days.", ""},
	}})

	results, err := c.Collect(context.Background())
	require.NoError(t, err)

	var docs []domain.SourceDocument
	for r := range results {
		require.NoError(t, r.Err)
		docs = append(docs, r.Result)
	}

	require.Len(t, docs, 2)
	assert.Equal(t, "data/policies/SHIPPING.PDF", docs[0].Source)
	assert.Equal(t, "Ships in 2 days.", docs[0].Text)
	assert.Equal(t, "data/refunds.pdf", docs[1].Source)
}

func TestPDFCollector_MissingDirYieldsNothing(t *testing.T) {
	c := NewPDFCollector(filepath.Join(t.TempDir(), "absent"), stubExtractor{})

	results, err := c.Collect(context.Background())
	require.NoError(t, err)

	count := 0
	for range results {
		count++
	}
	assert.Zero(t, count)
}

func TestPDFPipeline_Run(t *testing.T) {
	store := in_mem.NewChunkStore()
	require.NoError(t, store.Add(context.Background(), []domain.DocumentChunk{{Source: "stale.pdf", Text: "old"}}))

	splitter, err := chunker.New(chunker.Config{ChunkSize: 10, Overlap: 2})
	require.NoError(t, err)

	docs := collector.Func[domain.SourceDocument](func(ctx context.Context) (<-chan collector.Result[domain.SourceDocument], error) {
		out := make(chan collector.Result[domain.SourceDocument], 3)
		out <- collector.Result[domain.SourceDocument]{Result: domain.SourceDocument{Source: "data/a.pdf", Text: "0123456789abcdef"}}
		out <- collector.Result[domain.SourceDocument]{Result: domain.SourceDocument{Source: "data/empty.pdf", Text: ""}}
		out <- collector.Result[domain.SourceDocument]{Err: errors.New("corrupt")}
		close(out)
		return out, nil
	})

	emb := &stubEmbedder{}
	summary, err := NewPDFPipeline(docs, splitter, emb, store).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Summary{Files: 3, Chunks: 2, Skipped: 2}, summary)
	assert.Equal(t, 1, emb.calls)

	ids, err := store.ListIDs(context.Background())
	require.NoError(t, err)
	assert.Len(t, ids, 2)
}

func TestPDFPipeline_EmbeddingFailureAborts(t *testing.T) {
	store := in_mem.NewChunkStore()
	splitter, err := chunker.New(chunker.DefaultConfig())
	require.NoError(t, err)

	docs := collector.FromSlice(domain.SourceDocument{Source: "data/a.pdf", Text: "hello"})
	_, err = NewPDFPipeline(docs, splitter, &stubEmbedder{err: errors.New("provider down")}, store).Run(context.Background())

	assert.ErrorContains(t, err, "provider down")
}

func TestPDFPipeline_AbortReleasesCollector(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "data")
	pages := map[string][]string{}
	for _, name := range []string{"a.pdf", "b.pdf", "c.pdf"} {
		touch(t, filepath.Join(dataDir, name))
		pages[name] = []string{"some policy text"}
	}

	splitter, err := chunker.New(chunker.DefaultConfig())
	require.NoError(t, err)

	before := runtime.NumGoroutine()
	for i := 0; i < 20; i++ {
		p := NewPDFPipeline(
			NewPDFCollector(dataDir, stubExtractor{pages: pages}),
			splitter,
			&stubEmbedder{err: errors.New("provider down")},
			in_mem.NewChunkStore(),
		)
		_, err := p.Run(context.Background())
		require.ErrorContains(t, err, "provider down")
	}

	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before
	}, 2*time.Second, 10*time.Millisecond)
}
