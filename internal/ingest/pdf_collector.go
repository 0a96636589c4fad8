package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/DjordjeVuckovic/support-rag/internal/domain"
	"github.com/DjordjeVuckovic/support-rag/internal/ingest/collector"
)

// PageExtractor returns the text of each page of a document.
type PageExtractor interface {
	ExtractPages(path string) ([]string, error)
}

// PDFCollector walks a directory tree and emits the text of every PDF file.
// Each document's source is its path relative to the parent of the data directory.
type PDFCollector struct {
	dataDir   string
	extractor PageExtractor
}

func NewPDFCollector(dataDir string, extractor PageExtractor) *PDFCollector {
	return &PDFCollector{dataDir: dataDir, extractor: extractor}
}

func (c *PDFCollector) Collect(ctx context.Context) (<-chan collector.Result[domain.SourceDocument], error) {
	root, err := filepath.Abs(c.dataDir)
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	paths, err := findPDFs(root)
	if err != nil {
		return nil, err
	}
	slog.Info("PDF files found", "data_dir", root, "count", len(paths))

	out := make(chan collector.Result[domain.SourceDocument])
	go func() {
		defer close(out)

		for _, path := range paths {
			res := c.collectOne(filepath.Dir(root), path)
			select {
			case <-ctx.Done():
				return
			case out <- res:
			}
		}
	}()

	return out, nil
}

func (c *PDFCollector) collectOne(base, path string) collector.Result[domain.SourceDocument] {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return collector.Result[domain.SourceDocument]{Err: fmt.Errorf("relative path of %s: %w", path, err)}
	}

	pages, err := c.extractor.ExtractPages(path)
	if err != nil {
		return collector.Result[domain.SourceDocument]{Err: err}
	}

	return collector.Result[domain.SourceDocument]{Result: domain.SourceDocument{
		Path:   path,
		Source: filepath.ToSlash(rel),
		Text:   JoinPages(pages),
	}}
}

// JoinPages keeps trimmed non-empty pages joined by newlines.
func JoinPages(pages []string) string {
	kept := make([]string, 0, len(pages))
	for _, p := range pages {
		if t := strings.TrimSpace(p); t != "" {
			kept = append(kept, t)
		}
	}
	return strings.Join(kept, "\n")
}

// findPDFs lists *.pdf files (any case) under root in lexical order.
// A missing root yields no files.
func findPDFs(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root && errors.Is(err, fs.ErrNotExist) {
				return filepath.SkipDir
			}
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".pdf") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk data dir: %w", err)
	}
	return paths, nil
}
