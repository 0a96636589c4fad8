package embedding

import (
	"context"
	"fmt"
	"net/http"

	"github.com/DjordjeVuckovic/support-rag/internal/apperr"
	"github.com/DjordjeVuckovic/support-rag/pkg/httpjson"
)

// OllamaClient talks to the /api/embed endpoint of an Ollama server.
type OllamaClient struct {
	api *httpjson.Client
}

func NewOllamaClient(baseURL string, opts ...httpjson.Option) (*OllamaClient, error) {
	api, err := httpjson.New(baseURL, opts...)
	if err != nil {
		return nil, err
	}
	return &OllamaClient{api: api}, nil
}

func (oc *OllamaClient) Name() string {
	return "ollama"
}

type ollamaEmbedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type ollamaEmbedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

func (oc *OllamaClient) Generate(ctx context.Context, req Request) (*Response, error) {
	if req.Text == "" {
		return nil, apperr.NewValidation("missing text to embed")
	}

	batch, err := oc.GenerateBatch(ctx, BatchRequest{Model: req.Model, Texts: []string{req.Text}})
	if err != nil {
		return nil, err
	}
	return &Response{Embedding: batch.Embeddings[0]}, nil
}

func (oc *OllamaClient) GenerateBatch(ctx context.Context, req BatchRequest) (*BatchResponse, error) {
	if len(req.Texts) == 0 {
		return nil, apperr.NewValidation("missing texts to embed")
	}
	if req.Model == "" {
		return nil, apperr.NewValidation("missing model name")
	}

	var resp ollamaEmbedResponse
	err := oc.api.Do(ctx, http.MethodPost, "/api/embed", ollamaEmbedRequest{Model: req.Model, Input: req.Texts}, &resp)
	if err != nil {
		return nil, err
	}
	if len(resp.Embeddings) != len(req.Texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(req.Texts), len(resp.Embeddings))
	}

	return &BatchResponse{Embeddings: resp.Embeddings}, nil
}
