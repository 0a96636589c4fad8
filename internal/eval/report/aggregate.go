package report

import (
	"github.com/DjordjeVuckovic/support-rag/internal/domain"
	"github.com/DjordjeVuckovic/support-rag/internal/eval/metrics"
	"github.com/DjordjeVuckovic/support-rag/internal/eval/runner"
	"github.com/DjordjeVuckovic/support-rag/pkg/utils"
)

// Metric keys are consumed by dashboards and must not change.
const (
	KeyTotalQuestions          = "eval_total_questions"
	KeyHitRateAt1              = "eval_hit_rate_at_1"
	KeyHitRateAt3              = "eval_hit_rate_at_3"
	KeyHitRateAt4              = "eval_hit_rate_at_4"
	KeyMRRAt4                  = "eval_mrr_at_4"
	KeyExactSourceMatchRate    = "eval_exact_source_match_rate"
	KeySourcePrecisionAt4      = "eval_source_precision_at_4"
	KeySourceRecallAt4         = "eval_source_recall_at_4"
	KeyAvgRetrievalLatency     = "eval_avg_retrieval_latency_ms"
	KeyP95RetrievalLatency     = "eval_p95_retrieval_latency_ms"
	KeyAvgGenerationLatency    = "eval_avg_generation_latency_ms"
	KeyP95GenerationLatency    = "eval_p95_generation_latency_ms"
	KeyAvgTotalLatency         = "eval_avg_total_latency_ms"
	KeyAnswerNonEmptyRate      = "eval_answer_non_empty_rate"
	KeyRefusalRate             = "eval_refusal_rate"
	KeyGroundedAnswerRate      = "eval_grounded_answer_rate"
	KeyAvgAnswerContextOverlap = "eval_avg_answer_context_overlap"
	KeyAvgKeywordCoverage      = "eval_avg_expected_keyword_coverage"
	KeyAvgContextChars         = "eval_avg_context_chars"
	KeyAvgAnswerChars          = "eval_avg_answer_chars"
)

const (
	ratioDecimals   = 4
	latencyDecimals = 2
)

// Generate builds the report. Metrics other than the question count
// are computed from unrounded values of the successful cases only.
func Generate(res *runner.Result, meta Meta) *Report {
	r := &Report{
		GeneratedAt:      domain.Now().String(),
		GroundTruthPath:  meta.GroundTruthPath,
		PromptTemplateID: meta.PromptTemplateID,
		TopK:             res.Config.TopK,
		FailedQuestions:  res.FailedCount(),
		PerQuestion:      make([]Record, 0, len(res.Cases)),
	}

	for i := range res.Cases {
		r.PerQuestion = append(r.PerQuestion, newRecord(&res.Cases[i]))
	}

	r.Metrics = aggregate(len(res.Cases), res.Succeeded())
	r.TotalMetrics = len(r.Metrics)

	return r
}

func newRecord(c *runner.CaseResult) Record {
	rec := Record{
		ID:                      c.Case.ID,
		Question:                c.Question,
		ExpectedSource:          c.Case.ExpectedSource,
		RetrievedSources:        c.Retrieval.Ranked,
		HitAt1:                  boolToInt(c.Retrieval.HitAt1),
		HitAt3:                  boolToInt(c.Retrieval.HitAt3),
		HitAt4:                  boolToInt(c.Retrieval.HitAt4),
		Answer:                  c.Answer,
		AnswerNonEmpty:          boolToInt(c.AnswerNonEmpty),
		IsRefusal:               boolToInt(c.Refused),
		IsGrounded:              boolToInt(c.Grounded),
		AnswerContextOverlap:    utils.RoundDecimal(c.AnswerContextOverlap, ratioDecimals),
		ExpectedKeywordCoverage: utils.RoundDecimal(c.KeywordCoverage, ratioDecimals),
		RetrievalLatencyMs:      utils.RoundDecimal(utils.Milliseconds(c.RetrievalLatency.Nanoseconds()), latencyDecimals),
		GenerationLatencyMs:     utils.RoundDecimal(utils.Milliseconds(c.GenerationLatency.Nanoseconds()), latencyDecimals),
		TotalLatencyMs:          utils.RoundDecimal(utils.Milliseconds(c.TotalLatency.Nanoseconds()), latencyDecimals),
		ContextChars:            c.ContextChars,
		AnswerChars:             c.AnswerChars,
		Status:                  StatusOK,
	}
	if rec.RetrievedSources == nil {
		rec.RetrievedSources = []string{}
	}
	if c.Retrieval.TopSource != "" {
		top := c.Retrieval.TopSource
		rec.TopSource = &top
	}
	if c.Retrieval.Rank > 0 {
		rank := c.Retrieval.Rank
		rec.SourceRank = &rank
	}
	if c.Failed() {
		rec.Status = StatusFailed
		rec.Error = c.Err.Error()
	}
	return rec
}

func aggregate(total int, cases []runner.CaseResult) []Metric {
	n := len(cases)
	var (
		hit1, hit3, hit4     = make([]float64, n), make([]float64, n), make([]float64, n)
		rr, precision        = make([]float64, n), make([]float64, n)
		retrieval, gen, tot  = make([]float64, n), make([]float64, n), make([]float64, n)
		nonEmpty, refusal    = make([]float64, n), make([]float64, n)
		grounded, overlap    = make([]float64, n), make([]float64, n)
		coverage             = make([]float64, n)
		contextChars, answer = make([]float64, n), make([]float64, n)
	)

	for i, c := range cases {
		hit1[i] = metrics.BoolToFloat(c.Retrieval.HitAt1)
		hit3[i] = metrics.BoolToFloat(c.Retrieval.HitAt3)
		hit4[i] = metrics.BoolToFloat(c.Retrieval.HitAt4)
		rr[i] = c.Retrieval.ReciprocalRank
		precision[i] = c.Retrieval.Precision
		retrieval[i] = utils.Milliseconds(c.RetrievalLatency.Nanoseconds())
		gen[i] = utils.Milliseconds(c.GenerationLatency.Nanoseconds())
		tot[i] = utils.Milliseconds(c.TotalLatency.Nanoseconds())
		nonEmpty[i] = metrics.BoolToFloat(c.AnswerNonEmpty)
		refusal[i] = metrics.BoolToFloat(c.Refused)
		grounded[i] = metrics.BoolToFloat(c.Grounded)
		overlap[i] = c.AnswerContextOverlap
		coverage[i] = c.KeywordCoverage
		contextChars[i] = float64(c.ContextChars)
		answer[i] = float64(c.AnswerChars)
	}

	hitRate1 := metrics.SafeMean(hit1)
	hitRate4 := metrics.SafeMean(hit4)

	return []Metric{
		{KeyTotalQuestions, "Total Questions", float64(total), UnitCount, CategoryOverview},
		{KeyHitRateAt1, "Hit Rate @1", hitRate1, UnitRatio, CategoryRetrieval},
		{KeyHitRateAt3, "Hit Rate @3", metrics.SafeMean(hit3), UnitRatio, CategoryRetrieval},
		{KeyHitRateAt4, "Hit Rate @4", hitRate4, UnitRatio, CategoryRetrieval},
		{KeyMRRAt4, "MRR @4", metrics.SafeMean(rr), UnitRatio, CategoryRetrieval},
		{KeyExactSourceMatchRate, "Exact Source Match", hitRate1, UnitRatio, CategoryRetrieval},
		{KeySourcePrecisionAt4, "Source Precision @4", metrics.SafeMean(precision), UnitRatio, CategoryRetrieval},
		{KeySourceRecallAt4, "Source Recall @4", hitRate4, UnitRatio, CategoryRetrieval},
		{KeyAvgRetrievalLatency, "Avg Retrieval Latency", metrics.SafeMean(retrieval), UnitMs, CategoryLatency},
		{KeyP95RetrievalLatency, "P95 Retrieval Latency", metrics.P95(retrieval), UnitMs, CategoryLatency},
		{KeyAvgGenerationLatency, "Avg Generation Latency", metrics.SafeMean(gen), UnitMs, CategoryLatency},
		{KeyP95GenerationLatency, "P95 Generation Latency", metrics.P95(gen), UnitMs, CategoryLatency},
		{KeyAvgTotalLatency, "Avg Total Latency", metrics.SafeMean(tot), UnitMs, CategoryLatency},
		{KeyAnswerNonEmptyRate, "Answer Non-empty Rate", metrics.SafeMean(nonEmpty), UnitRatio, CategoryGeneration},
		{KeyRefusalRate, "Refusal Rate", metrics.SafeMean(refusal), UnitRatio, CategoryGeneration},
		{KeyGroundedAnswerRate, "Grounded Answer Rate", metrics.SafeMean(grounded), UnitRatio, CategoryGeneration},
		{KeyAvgAnswerContextOverlap, "Avg Answer-Context Overlap", metrics.SafeMean(overlap), UnitRatio, CategoryGeneration},
		{KeyAvgKeywordCoverage, "Avg Expected Keyword Coverage", metrics.SafeMean(coverage), UnitRatio, CategoryGeneration},
		{KeyAvgContextChars, "Avg Context Chars", metrics.SafeMean(contextChars), UnitCount, CategoryContext},
		{KeyAvgAnswerChars, "Avg Answer Chars", metrics.SafeMean(answer), UnitCount, CategoryContext},
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
