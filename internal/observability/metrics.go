package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "support_rag"

// Answer outcomes.
const (
	OutcomeAnswered = "answered"
	OutcomeRefused  = "refused"
	OutcomeFailed   = "failed"
)

var (
	// AnswersTotal counts pipeline answers.
	// Labels: outcome (answered|refused|failed)
	AnswersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "answers_total",
		Help:      "Answers produced by the retrieval/generation pipeline by outcome.",
	}, []string{"outcome"})

	// ProviderErrorsTotal counts failed embedding and generation calls.
	// Labels: provider, operation
	ProviderErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provider_errors_total",
		Help:      "Embedding and generation backend failures.",
	}, []string{"provider", "operation"})

	RetrievalDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "retrieval_duration_seconds",
		Help:      "Embedding plus vector store query latency.",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	})

	GenerationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "generation_duration_seconds",
		Help:      "Chat completion latency.",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
	})

	// EvalQuestionsTotal counts evaluated ground-truth cases.
	// Labels: status (ok|failed)
	EvalQuestionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "eval_questions_total",
		Help:      "Evaluated ground-truth questions by status.",
	}, []string{"status"})

	IngestedChunksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ingested_chunks_total",
		Help:      "Chunks written to the vector store by ingestion.",
	})
)

func RecordAnswer(outcome string) {
	AnswersTotal.WithLabelValues(outcome).Inc()
}

func RecordProviderError(provider, operation string) {
	ProviderErrorsTotal.WithLabelValues(provider, operation).Inc()
}

func ObserveRetrieval(d time.Duration) {
	RetrievalDuration.Observe(d.Seconds())
}

func ObserveGeneration(d time.Duration) {
	GenerationDuration.Observe(d.Seconds())
}

func RecordEvalQuestion(status string) {
	EvalQuestionsTotal.WithLabelValues(status).Inc()
}
