package runner

import (
	"time"

	"github.com/DjordjeVuckovic/support-rag/internal/domain"
	"github.com/DjordjeVuckovic/support-rag/internal/eval/metrics"
)

// CaseResult holds the raw, unrounded measurements of one ground-truth case.
// Err is set when a provider or store call failed; scores are then partial.
type CaseResult struct {
	Case     domain.GroundTruthCase
	Question string

	Retrieval metrics.RetrievalScores
	Answer    string

	AnswerNonEmpty       bool
	Refused              bool
	Grounded             bool
	AnswerContextOverlap float64
	KeywordCoverage      float64

	RetrievalLatency  time.Duration
	GenerationLatency time.Duration
	TotalLatency      time.Duration

	ContextChars int
	AnswerChars  int

	Err error
}

func (c *CaseResult) Failed() bool {
	return c.Err != nil
}

type Result struct {
	Cases  []CaseResult
	Config Config
}

// Succeeded returns the cases that completed without error, in ground-truth order.
func (r *Result) Succeeded() []CaseResult {
	out := make([]CaseResult, 0, len(r.Cases))
	for _, c := range r.Cases {
		if !c.Failed() {
			out = append(out, c)
		}
	}
	return out
}

func (r *Result) FailedCount() int {
	return len(r.Cases) - len(r.Succeeded())
}
