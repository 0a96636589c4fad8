package llm

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/DjordjeVuckovic/support-rag/pkg/httpjson"
	"github.com/DjordjeVuckovic/support-rag/pkg/retry"
)

const defaultTimeout = 120 * time.Second

// OllamaCompleter talks to a local Ollama server through /api/chat.
type OllamaCompleter struct {
	api   *httpjson.Client
	model string
}

func NewOllamaCompleter(baseURL, model string, opts ...httpjson.Option) (*OllamaCompleter, error) {
	opts = append([]httpjson.Option{httpjson.WithHTTPClient(&http.Client{Timeout: defaultTimeout})}, opts...)
	api, err := httpjson.New(baseURL, opts...)
	if err != nil {
		return nil, err
	}
	return &OllamaCompleter{api: api, model: model}, nil
}

type ollamaChatRequest struct {
	Model    string         `json:"model"`
	Messages []Message      `json:"messages"`
	Stream   bool           `json:"stream"`
	Options  map[string]any `json:"options,omitempty"`
}

type ollamaChatResponse struct {
	Message Message `json:"message"`
	Done    bool    `json:"done"`
}

func (c *OllamaCompleter) Name() string {
	return "ollama"
}

func (c *OllamaCompleter) Complete(ctx context.Context, req Request) (string, error) {
	oReq := ollamaChatRequest{
		Model:    c.model,
		Messages: req.Messages,
		Stream:   false,
		Options:  map[string]any{"temperature": req.Temperature},
	}

	var resp ollamaChatResponse
	if err := c.api.Do(ctx, http.MethodPost, "/api/chat", oReq, &resp); err != nil {
		var se *httpjson.StatusError
		if errors.As(err, &se) && se.Permanent() {
			return "", retry.NewPermanent(err)
		}
		return "", err
	}

	return resp.Message.Content, nil
}
