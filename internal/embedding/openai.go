package embedding

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/support-rag/internal/apperr"
	"github.com/sashabaranov/go-openai"
)

type OpenAIClient struct {
	client *openai.Client
}

func NewOpenAIClient(apiKey, baseURL string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, apperr.NewConfiguration("OPENAI_API_KEY", "is not configured")
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return &OpenAIClient{client: openai.NewClientWithConfig(config)}, nil
}

func (c *OpenAIClient) Name() string {
	return "openai"
}

func (c *OpenAIClient) Generate(ctx context.Context, req Request) (*Response, error) {
	if req.Text == "" {
		return nil, apperr.NewValidation("missing text to embed")
	}

	resp, err := c.GenerateBatch(ctx, BatchRequest{Model: req.Model, Texts: []string{req.Text}})
	if err != nil {
		return nil, err
	}

	return &Response{Embedding: resp.Embeddings[0]}, nil
}

func (c *OpenAIClient) GenerateBatch(ctx context.Context, req BatchRequest) (*BatchResponse, error) {
	if len(req.Texts) == 0 {
		return nil, apperr.NewValidation("missing prompts to embed")
	}

	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: req.Texts,
		Model: openai.EmbeddingModel(req.Model),
	})
	if err != nil {
		return nil, fmt.Errorf("create embeddings: %w", err)
	}
	if len(resp.Data) != len(req.Texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(req.Texts), len(resp.Data))
	}

	out := make([][]float32, len(resp.Data))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(out) {
			return nil, fmt.Errorf("embedding index %d out of range", d.Index)
		}
		out[d.Index] = d.Embedding
	}

	return &BatchResponse{Embeddings: out}, nil
}
