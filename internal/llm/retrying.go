package llm

import (
	"context"

	"github.com/DjordjeVuckovic/support-rag/internal/apperr"
	"github.com/DjordjeVuckovic/support-rag/internal/observability"
	"github.com/DjordjeVuckovic/support-rag/pkg/retry"
)

// RetryingCompleter retries transient failures and reports the final one as a ProviderError.
type RetryingCompleter struct {
	next Completer
	cfg  retry.Config
}

func NewRetryingCompleter(next Completer, cfg retry.Config) *RetryingCompleter {
	return &RetryingCompleter{next: next, cfg: cfg}
}

func (r *RetryingCompleter) Name() string {
	return r.next.Name()
}

func (r *RetryingCompleter) Complete(ctx context.Context, req Request) (string, error) {
	out, err := retry.Do(ctx, r.cfg, func() (string, error) {
		return r.next.Complete(ctx, req)
	})
	if err != nil {
		observability.RecordProviderError(r.next.Name(), "complete")
		return "", apperr.NewProvider(r.next.Name(), "complete", err)
	}
	return out, nil
}
