// Package testing starts throwaway database containers for integration tests.
package testing

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const pgvectorImage = "pgvector/pgvector:pg17"

type PGContainer struct {
	Container  testcontainers.Container
	ConnString string
}

type PGConfig struct {
	Database string
	Username string
	Password string
	// Migrations is the directory of *.up.sql files applied on start, db/migrations by default.
	Migrations string
}

// Terminate stops and removes the container.
func (c *PGContainer) Terminate() error {
	return testcontainers.TerminateContainer(c.Container)
}

// NewPGContainer starts a pgvector-enabled Postgres with every up migration applied in name order.
func NewPGContainer(ctx context.Context, cfg PGConfig) (*PGContainer, error) {
	if cfg.Migrations == "" {
		cfg.Migrations = defaultMigrationsDir()
	}

	scripts, err := filepath.Glob(filepath.Join(cfg.Migrations, "*.up.sql"))
	if err != nil {
		return nil, fmt.Errorf("failed to find migration files: %w", err)
	}
	sort.Strings(scripts)

	container, err := postgres.Run(ctx,
		pgvectorImage,
		postgres.WithDatabase(cfg.Database),
		postgres.WithUsername(cfg.Username),
		postgres.WithPassword(cfg.Password),
		postgres.WithInitScripts(scripts...),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = testcontainers.TerminateContainer(container)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	return &PGContainer{Container: container, ConnString: connStr}, nil
}

// NewPGContainerWithCleanup starts a container for one test and removes it when the test ends.
func NewPGContainerWithCleanup(ctx context.Context, tb testing.TB) *PGContainer {
	tb.Helper()

	c, err := NewPGContainer(ctx, PGConfig{
		Database: "support_rag_test",
		Username: "test",
		Password: "test",
	})
	if err != nil {
		tb.Fatalf("failed to create postgres container: %v", err)
	}

	tb.Cleanup(func() {
		if err := c.Terminate(); err != nil {
			tb.Logf("failed to terminate postgres container: %v", err)
		}
	})
	return c
}

func defaultMigrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "db", "migrations")
}
