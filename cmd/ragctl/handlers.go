package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/DjordjeVuckovic/support-rag/internal/app"
	"github.com/DjordjeVuckovic/support-rag/internal/eval"
	"github.com/DjordjeVuckovic/support-rag/internal/eval/report"
)

func runEvaluate(ctx context.Context, out io.Writer, opts eval.Options, dataDir string, table bool) error {
	return withApp(ctx, func(a *app.App) error {
		evaluator, err := a.Evaluator(opts.TopK, absOrEmpty(dataDir))
		if err != nil {
			return err
		}

		r, err := evaluator.Evaluate(ctx, opts)
		if err != nil {
			return err
		}

		if table {
			report.WriteTable(r, out)
		}
		_, err = fmt.Fprintf(out, "Saved report: %s\n", opts.OutputPath)
		return err
	})
}

func runIngest(ctx context.Context, out io.Writer, dataDir string) error {
	return withApp(ctx, func(a *app.App) error {
		ingester, err := a.Ingester(absOrEmpty(dataDir))
		if err != nil {
			return err
		}

		summary, err := ingester.Run(ctx)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintf(out, "Ingestion complete. Indexed %d PDF files and %d chunks.\n", summary.Files, summary.Chunks)
		return err
	})
}

func runSeedTemplates(ctx context.Context, out io.Writer) error {
	return withApp(ctx, func(a *app.App) error {
		if err := a.Chat.SeedTemplates(ctx); err != nil {
			return err
		}
		_, err := fmt.Fprintln(out, "Prompt templates seeded.")
		return err
	})
}

func runSeedUser(ctx context.Context, out io.Writer, username, fullName string) error {
	return withApp(ctx, func(a *app.App) error {
		var name *string
		if fullName != "" {
			name = &fullName
		}

		user, err := a.Chat.CreateUser(ctx, username, name)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "User %s: %s\n", user.Username, user.ID)
		return err
	})
}

func runReport(out io.Writer, path string) error {
	r, err := report.ReadJSON(path)
	if err != nil {
		return err
	}
	report.WriteTable(r, out)
	return nil
}

func absOrEmpty(dir string) string {
	if dir == "" {
		return ""
	}
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}
