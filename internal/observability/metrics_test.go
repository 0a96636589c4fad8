package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordAnswer(t *testing.T) {
	before := testutil.ToFloat64(AnswersTotal.WithLabelValues(OutcomeRefused))
	RecordAnswer(OutcomeRefused)
	assert.Equal(t, before+1, testutil.ToFloat64(AnswersTotal.WithLabelValues(OutcomeRefused)))
}

func TestRecordProviderError(t *testing.T) {
	before := testutil.ToFloat64(ProviderErrorsTotal.WithLabelValues("ollama", "complete"))
	RecordProviderError("ollama", "complete")
	assert.Equal(t, before+1, testutil.ToFloat64(ProviderErrorsTotal.WithLabelValues("ollama", "complete")))
}

func TestObserveDurations(t *testing.T) {
	ObserveRetrieval(20 * time.Millisecond)
	ObserveGeneration(time.Second)
	assert.Equal(t, 1, testutil.CollectAndCount(RetrievalDuration))
	assert.Equal(t, 1, testutil.CollectAndCount(GenerationDuration))
}
