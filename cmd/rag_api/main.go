// Package main Support RAG API
// @title Support RAG API
// @version 1.0
// @description Customer-support chat answering strictly from ingested PDF documents
// @BasePath /
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/DjordjeVuckovic/support-rag/internal/app"
	"github.com/DjordjeVuckovic/support-rag/internal/router"
	"github.com/DjordjeVuckovic/support-rag/internal/server"
	pkgserver "github.com/DjordjeVuckovic/support-rag/pkg/server"
	"github.com/labstack/echo/v4"
)

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}
	app.SetupLogger(cfg.Log, os.Stdout)

	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load server config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	a, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Chat.SeedTemplates(ctx); err != nil {
		slog.Error("Failed to seed prompt templates", "error", err)
		os.Exit(1)
	}

	chatService, err := a.ChatService()
	if err != nil {
		slog.Error("Failed to build chat service", "error", err)
		os.Exit(1)
	}

	health := pkgserver.NewCompositeHealthChecker(a.Stores.Health)

	s := server.New(sCfg, health).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health").
		SetupMetrics("/metrics").
		SetupOpenApi("/swagger/*")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Support RAG API is running")
	})

	router.NewChatRouter(s.Echo, chatService).Bind()
	router.NewTemplateRouter(s.Echo, a.Chat).Bind()
	router.NewEvalRouter(s.Echo, sCfg.ReportPath).Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	slog.Info("Starting server", "port", sCfg.Port, "storage", cfg.Storage.Type)
	if err := s.Start(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		a.Close()
		os.Exit(1)
	}
}
