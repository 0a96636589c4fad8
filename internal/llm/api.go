package llm

import (
	"context"

	"github.com/DjordjeVuckovic/support-rag/internal/domain"
)

const DefaultTemperature float32 = 0.2

type Message struct {
	Role    domain.Role `json:"role"`
	Content string      `json:"content"`
}

type Request struct {
	Messages    []Message
	Temperature float32
}

// Completer is a chat generation backend. An empty string is a valid completion.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
	Name() string
}
