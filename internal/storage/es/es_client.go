package es

import (
	"context"
	"log/slog"

	"github.com/elastic/go-elasticsearch/v8"
)

type ClientConfig struct {
	Addresses []string `env:"ADDRESSES" envSeparator:"," envDefault:"http://localhost:9200"`
	Username  string   `env:"USERNAME"`
	Password  string   `env:"PASSWORD"`
	// IndexPrefix namespaces every index this service creates.
	IndexPrefix string `env:"INDEX_PREFIX" envDefault:"support_rag_"`
}

func NewClient(config ClientConfig) (*elasticsearch.TypedClient, error) {
	cfg := elasticsearch.Config{
		Addresses: config.Addresses,
	}

	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	return elasticsearch.NewTypedClient(cfg)
}

type HealthChecker struct {
	client *elasticsearch.TypedClient
}

func NewHealthChecker(client *elasticsearch.TypedClient) *HealthChecker {
	return &HealthChecker{client: client}
}

func (hc *HealthChecker) Healthy(ctx context.Context) bool {
	if hc.client == nil {
		return false
	}
	ok, err := hc.client.Ping().Do(ctx)
	if err != nil {
		slog.Warn("Elasticsearch health check failed", "error", err)
		return false
	}
	return ok
}
