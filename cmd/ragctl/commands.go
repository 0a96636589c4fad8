package main

import (
	"github.com/DjordjeVuckovic/support-rag/internal/domain"
	"github.com/DjordjeVuckovic/support-rag/internal/eval"
	"github.com/DjordjeVuckovic/support-rag/internal/eval/runner"
	"github.com/spf13/cobra"
)

func buildEvaluateCmd() *cobra.Command {
	opts := eval.DefaultOptions()
	var (
		dataDir string
		table   bool
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score retrieval and answers against a ground-truth set",
		Long: `Run every ground-truth question through retrieval and generation, score
the results and write the evaluation report. An empty knowledge base is
ingested from --data-dir first.`,
		Example: `  ragctl evaluate
  ragctl evaluate --ground-truth eval/ground_truth_rag.yaml --top-k 6 --persona persona_empathetic`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluate(cmd.Context(), cmd.OutOrStdout(), opts, dataDir, table)
		},
	}

	cmd.Flags().StringVar(&opts.GroundTruthPath, "ground-truth", eval.DefaultGroundTruthPath, "Ground-truth file (JSON array or YAML)")
	cmd.Flags().StringVar(&opts.OutputPath, "output", eval.DefaultOutputPath, "Report output path")
	cmd.Flags().IntVar(&opts.TopK, "top-k", runner.DefaultTopK, "Chunks retrieved per question")
	cmd.Flags().StringVar(&opts.PromptTemplateID, "persona", domain.DefaultPromptTemplateID, "Prompt template id")
	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", runner.DefaultConcurrency, "Questions evaluated at once")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "PDF directory used when the knowledge base is empty (default RAG_DATA_DIR)")
	cmd.Flags().BoolVar(&table, "table", true, "Print the metrics table")

	return cmd
}

func buildIngestCmd() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Rebuild the knowledge base from PDF files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(cmd.Context(), cmd.OutOrStdout(), dataDir)
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Directory searched recursively for PDF files (default RAG_DATA_DIR)")
	return cmd
}

func buildSeedTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-templates",
		Short: "Replace stored prompt templates with the default personas",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeedTemplates(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

func buildSeedUserCmd() *cobra.Command {
	var fullName string

	cmd := &cobra.Command{
		Use:   "seed-user <username>",
		Short: "Create a user, or print the existing one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeedUser(cmd.Context(), cmd.OutOrStdout(), args[0], fullName)
		},
	}

	cmd.Flags().StringVar(&fullName, "full-name", "", "Display name")
	return cmd
}

func buildReportCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a saved evaluation report as tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.OutOrStdout(), path)
		},
	}

	cmd.Flags().StringVar(&path, "path", eval.DefaultOutputPath, "Report file")
	return cmd
}
