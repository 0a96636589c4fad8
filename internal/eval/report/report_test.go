package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/support-rag/internal/apperr"
	"github.com/DjordjeVuckovic/support-rag/internal/domain"
	"github.com/DjordjeVuckovic/support-rag/internal/eval/metrics"
	"github.com/DjordjeVuckovic/support-rag/internal/eval/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func sampleResult() *runner.Result {
	ok := func(id string, sources []string, answer string, overlap float64, latency time.Duration) runner.CaseResult {
		return runner.CaseResult{
			Case:                 domain.GroundTruthCase{ID: id, Question: id, ExpectedSource: ptr("policy.pdf")},
			Question:             id,
			Retrieval:            metrics.ComputeRetrieval(sources, "policy.pdf", 4),
			Answer:               answer,
			AnswerNonEmpty:       true,
			Grounded:             overlap >= metrics.GroundedThreshold,
			AnswerContextOverlap: overlap,
			KeywordCoverage:      0.5,
			RetrievalLatency:     latency,
			GenerationLatency:    2 * latency,
			TotalLatency:         3 * latency,
			ContextChars:         100,
			AnswerChars:          len(answer),
		}
	}

	return &runner.Result{
		Config: runner.Config{TopK: 4, Concurrency: 1},
		Cases: []runner.CaseResult{
			ok("q1", []string{"policy.pdf", "faq.pdf"}, "Refunds take 30 days.", 2.0/3.0, 10*time.Millisecond),
			{
				Case:             domain.GroundTruthCase{ID: "q2", Question: "q2", ExpectedSource: ptr("policy.pdf")},
				Question:         "q2",
				RetrievalLatency: 5 * time.Millisecond,
				TotalLatency:     5 * time.Millisecond,
				Err:              apperr.NewProvider("openai", "complete", errors.New("timeout")),
			},
			ok("q3", []string{"faq.pdf", "policy.pdf"}, "See the FAQ.", 0.1, 30*time.Millisecond),
		},
	}
}

func TestGenerate_Metrics(t *testing.T) {
	r := Generate(sampleResult(), Meta{GroundTruthPath: "eval/ground_truth_rag.json", PromptTemplateID: domain.DefaultPromptTemplateID})

	assert.Equal(t, 20, r.TotalMetrics)
	require.Len(t, r.Metrics, 20)
	assert.Equal(t, 4, r.TopK)
	assert.Equal(t, 1, r.FailedQuestions)
	assert.Equal(t, "persona_professional", r.PromptTemplateID)
	assert.NotEmpty(t, r.GeneratedAt)

	expect := map[string]float64{
		KeyTotalQuestions:          3,
		KeyHitRateAt1:              0.5,
		KeyHitRateAt3:              1,
		KeyHitRateAt4:              1,
		KeyMRRAt4:                  0.75,
		KeyExactSourceMatchRate:    0.5,
		KeySourcePrecisionAt4:      0.5,
		KeySourceRecallAt4:         1,
		KeyAvgRetrievalLatency:     20,
		KeyP95RetrievalLatency:     30,
		KeyAvgGenerationLatency:    40,
		KeyAvgTotalLatency:         60,
		KeyGroundedAnswerRate:      0.5,
		KeyAvgAnswerContextOverlap: (2.0/3.0 + 0.1) / 2,
		KeyAvgKeywordCoverage:      0.5,
		KeyRefusalRate:             0,
		KeyAvgContextChars:         100,
	}
	for key, want := range expect {
		m, ok := r.Metric(key)
		require.True(t, ok, key)
		assert.InDelta(t, want, m.Value, 1e-9, key)
	}

	first := r.Metrics[0]
	assert.Equal(t, Metric{Key: "eval_total_questions", Label: "Total Questions", Value: 3, Unit: UnitCount, Category: CategoryOverview}, first)
}

func TestGenerate_Records(t *testing.T) {
	r := Generate(sampleResult(), Meta{})
	require.Len(t, r.PerQuestion, 3)

	q1 := r.PerQuestion[0]
	assert.Equal(t, StatusOK, q1.Status)
	assert.Empty(t, q1.Error)
	assert.Equal(t, []string{"policy.pdf", "faq.pdf"}, q1.RetrievedSources)
	require.NotNil(t, q1.TopSource)
	assert.Equal(t, "policy.pdf", *q1.TopSource)
	require.NotNil(t, q1.SourceRank)
	assert.Equal(t, 1, *q1.SourceRank)
	assert.Equal(t, 1, q1.HitAt1)
	assert.Equal(t, 0.6667, q1.AnswerContextOverlap)
	assert.Equal(t, 10.0, q1.RetrievalLatencyMs)
	assert.Equal(t, 30.0, q1.TotalLatencyMs)

	q2 := r.PerQuestion[1]
	assert.Equal(t, StatusFailed, q2.Status)
	assert.Contains(t, q2.Error, "generation backend unavailable")
	assert.Nil(t, q2.SourceRank)
	assert.Nil(t, q2.TopSource)
	assert.NotNil(t, q2.RetrievedSources)
	assert.Equal(t, 5.0, q2.RetrievalLatencyMs)

	q3 := r.PerQuestion[2]
	require.NotNil(t, q3.SourceRank)
	assert.Equal(t, 2, *q3.SourceRank)
	assert.Equal(t, 0, q3.IsGrounded)
}

func TestGenerate_Empty(t *testing.T) {
	r := Generate(&runner.Result{Config: runner.DefaultConfig()}, Meta{})
	assert.Equal(t, 20, r.TotalMetrics)
	for _, m := range r.Metrics {
		assert.Zero(t, m.Value, m.Key)
	}
	assert.NotNil(t, r.PerQuestion)
}

func TestWriteReadJSON_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "rag_eval_report.json")
	want := Generate(sampleResult(), Meta{GroundTruthPath: "gt.json", PromptTemplateID: "persona_empathetic"})

	require.NoError(t, WriteJSON(want, path))
	got, err := ReadJSON(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// a second write replaces the file wholesale
	want.PerQuestion = want.PerQuestion[:1]
	require.NoError(t, WriteJSON(want, path))
	got, err = ReadJSON(path)
	require.NoError(t, err)
	assert.Len(t, got.PerQuestion, 1)
}

func TestWriteJSON_Format(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, WriteJSON(Generate(sampleResult(), Meta{}), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	for _, key := range []string{
		`"generated_at"`, `"ground_truth_path"`, `"prompt_template_id"`, `"top_k": 4`, `"total_metrics": 20`,
		`"metric_key": "eval_mrr_at_4"`, `"source_rank": null`, `"expected_keyword_coverage"`, `"status": "failed"`,
	} {
		assert.Contains(t, string(data), key)
	}
}

func TestReadJSON_Missing(t *testing.T) {
	_, err := ReadJSON(filepath.Join(t.TempDir(), "absent.json"))
	var nf *apperr.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	WriteTable(Generate(sampleResult(), Meta{PromptTemplateID: "persona_professional"}), &buf)

	out := buf.String()
	assert.Contains(t, out, "RAG Evaluation")
	assert.Contains(t, out, "MRR @4")
	assert.Contains(t, out, "ERR: generation backend unavailable")
	assert.Contains(t, out, "Failed: 1/3")
}
