// Package eval runs a ground-truth evaluation end to end: it loads the cases,
// prepares the knowledge base, measures the pipeline and writes the report.
package eval

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/support-rag/internal/domain"
	"github.com/DjordjeVuckovic/support-rag/internal/eval/groundtruth"
	"github.com/DjordjeVuckovic/support-rag/internal/eval/report"
	"github.com/DjordjeVuckovic/support-rag/internal/eval/runner"
	"github.com/DjordjeVuckovic/support-rag/internal/ingest"
)

const (
	DefaultGroundTruthPath = "eval/ground_truth_rag.json"
	DefaultOutputPath      = "eval/rag_eval_report.json"
)

type TemplateStore interface {
	SeedTemplates(ctx context.Context) error
	GetTemplate(ctx context.Context, id string) (*domain.PromptTemplate, error)
}

type ChunkLister interface {
	ListIDs(ctx context.Context) ([]string, error)
}

type Options struct {
	GroundTruthPath  string
	OutputPath       string
	TopK             int
	PromptTemplateID string
	Concurrency      int
}

func DefaultOptions() Options {
	return Options{
		GroundTruthPath:  DefaultGroundTruthPath,
		OutputPath:       DefaultOutputPath,
		TopK:             runner.DefaultTopK,
		PromptTemplateID: domain.DefaultPromptTemplateID,
		Concurrency:      runner.DefaultConcurrency,
	}
}

type Evaluator struct {
	pipeline  runner.Pipeline
	templates TemplateStore
	chunks    ChunkLister
	ingester  ingest.Pipeline
}

// NewEvaluator wires the collaborators. ingester may be nil, in which case an
// empty knowledge base is evaluated as is.
func NewEvaluator(p runner.Pipeline, templates TemplateStore, chunks ChunkLister, ingester ingest.Pipeline) *Evaluator {
	return &Evaluator{
		pipeline:  p,
		templates: templates,
		chunks:    chunks,
		ingester:  ingester,
	}
}

// Evaluate runs every ground-truth case and persists the report to opts.OutputPath,
// replacing any previous file.
func (e *Evaluator) Evaluate(ctx context.Context, opts Options) (*report.Report, error) {
	cases, err := groundtruth.LoadFromFile(opts.GroundTruthPath)
	if err != nil {
		return nil, err
	}
	slog.Info("Ground truth loaded", "path", opts.GroundTruthPath, "questions", len(cases))

	if err := e.templates.SeedTemplates(ctx); err != nil {
		return nil, err
	}

	if err := e.bootstrap(ctx); err != nil {
		return nil, err
	}

	var templateText string
	tpl, err := e.templates.GetTemplate(ctx, opts.PromptTemplateID)
	if err != nil {
		return nil, fmt.Errorf("load prompt template: %w", err)
	}
	if tpl != nil {
		templateText = tpl.Template
	} else if opts.PromptTemplateID != "" {
		slog.Warn("Prompt template not found, using base prompt", "id", opts.PromptTemplateID)
	}

	engine := runner.New(e.pipeline, runner.Config{
		TopK:           opts.TopK,
		PromptTemplate: templateText,
		Concurrency:    opts.Concurrency,
	})
	res, err := engine.Run(ctx, cases)
	if err != nil {
		return nil, err
	}

	r := report.Generate(res, report.Meta{
		GroundTruthPath:  opts.GroundTruthPath,
		PromptTemplateID: opts.PromptTemplateID,
	})
	if err := report.WriteJSON(r, opts.OutputPath); err != nil {
		return nil, err
	}

	slog.Info("Evaluation report saved", "path", opts.OutputPath, "questions", len(r.PerQuestion), "failed", r.FailedQuestions)
	return r, nil
}

// bootstrap ingests the knowledge base once when the chunk collection is empty.
func (e *Evaluator) bootstrap(ctx context.Context) error {
	ids, err := e.chunks.ListIDs(ctx)
	if err != nil {
		return fmt.Errorf("list chunk ids: %w", err)
	}
	if len(ids) > 0 || e.ingester == nil {
		return nil
	}

	slog.Info("Knowledge base is empty, running ingestion")
	summary, err := e.ingester.Run(ctx)
	if err != nil {
		return fmt.Errorf("bootstrap ingestion: %w", err)
	}
	slog.Info("Bootstrap ingestion finished", "files", summary.Files, "chunks", summary.Chunks)
	return nil
}
