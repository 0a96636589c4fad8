package embedding

import (
	"context"
)

const defaultModel = "text-embedding-3-small"

type Request struct {
	Model string
	Text  string
}

type Response struct {
	Embedding []float32
}

type BatchRequest struct {
	Model string
	Texts []string
}

// BatchResponse holds one embedding per input text, in input order.
type BatchResponse struct {
	Embeddings [][]float32
}

// Client is one embedding backend.
type Client interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	GenerateBatch(ctx context.Context, req BatchRequest) (*BatchResponse, error)
	Name() string
}
