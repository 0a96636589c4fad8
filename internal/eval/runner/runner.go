package runner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/DjordjeVuckovic/support-rag/internal/domain"
	"github.com/DjordjeVuckovic/support-rag/internal/eval/metrics"
	"github.com/DjordjeVuckovic/support-rag/internal/observability"
	"golang.org/x/sync/errgroup"
)

// Pipeline is the retrieval and generation surface the engine measures.
type Pipeline interface {
	Retrieve(ctx context.Context, question string, topK int) ([]domain.RetrievedChunk, error)
	Generate(ctx context.Context, question string, chunks []domain.RetrievedChunk, history []domain.Turn, template string) (string, error)
}

type Engine struct {
	pipeline Pipeline
	config   Config
}

func New(pipeline Pipeline, cfg Config) *Engine {
	return &Engine{pipeline: pipeline, config: cfg.normalized()}
}

// Run evaluates every case and returns results in input order.
// A failing case is recorded and the run continues; only cancellation aborts it.
func (e *Engine) Run(ctx context.Context, cases []domain.GroundTruthCase) (*Result, error) {
	res := &Result{
		Cases:  make([]CaseResult, len(cases)),
		Config: e.config,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.Concurrency)

	for i := range cases {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res.Cases[i] = e.evaluateCase(gctx, cases[i])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("evaluation cancelled: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("evaluation cancelled: %w", err)
	}

	slog.Info("Evaluation run completed",
		"questions", len(cases),
		"failed", res.FailedCount(),
		"top_k", e.config.TopK,
		"concurrency", e.config.Concurrency)

	return res, nil
}

func (e *Engine) evaluateCase(ctx context.Context, c domain.GroundTruthCase) CaseResult {
	question := strings.TrimSpace(c.Question)
	cr := CaseResult{Case: c, Question: question}
	expected := c.Expected()

	totalStart := time.Now()

	retrievalStart := time.Now()
	chunks, err := e.pipeline.Retrieve(ctx, question, e.config.TopK)
	cr.RetrievalLatency = time.Since(retrievalStart)
	if err != nil {
		return e.fail(cr, totalStart, err)
	}

	sources := make([]string, len(chunks))
	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		sources[i] = ch.Source
		texts[i] = ch.Text
	}
	cr.Retrieval = metrics.ComputeRetrieval(sources, expected, e.config.TopK)
	contextText := strings.Join(texts, "\n\n")
	cr.ContextChars = utf8.RuneCountInString(contextText)

	generationStart := time.Now()
	var answer string
	if len(chunks) == 0 {
		answer = domain.RefusalAnswer
	} else {
		answer, err = e.pipeline.Generate(ctx, question, chunks, nil, e.config.PromptTemplate)
	}
	cr.GenerationLatency = time.Since(generationStart)
	if err != nil {
		return e.fail(cr, totalStart, err)
	}
	cr.TotalLatency = time.Since(totalStart)

	answerTokens := metrics.Tokenize(answer)
	cr.Answer = answer
	cr.AnswerChars = utf8.RuneCountInString(answer)
	cr.AnswerNonEmpty = strings.TrimSpace(answer) != ""
	cr.AnswerContextOverlap = metrics.AnswerContextOverlap(answerTokens, metrics.Tokenize(contextText))
	cr.KeywordCoverage = metrics.KeywordCoverage(answerTokens, metrics.KeywordSet(c.ExpectedAnswerKeywords))
	cr.Refused = metrics.IsRefusal(answer, domain.RefusalAnswer)
	cr.Grounded = metrics.IsGrounded(answer, cr.AnswerContextOverlap, cr.Refused)

	observability.RecordEvalQuestion("ok")
	slog.Debug("Evaluated question",
		"id", c.ID,
		"rank", cr.Retrieval.Rank,
		"grounded", cr.Grounded,
		"refused", cr.Refused,
		"total_latency", cr.TotalLatency)

	return cr
}

func (e *Engine) fail(cr CaseResult, totalStart time.Time, err error) CaseResult {
	cr.TotalLatency = time.Since(totalStart)
	cr.Err = err
	observability.RecordEvalQuestion("failed")
	slog.Warn("Evaluation question failed", "id", cr.Case.ID, "error", err)
	return cr
}
