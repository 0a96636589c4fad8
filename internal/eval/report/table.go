package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

func WriteTable(r *Report, w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\n=== RAG Evaluation ===\n")
	fmt.Fprintf(tw, "Generated: %s  Ground truth: %s  Persona: %s  top_k: %d  Failed: %d/%d\n\n",
		r.GeneratedAt, r.GroundTruthPath, r.PromptTemplateID, r.TopK, r.FailedQuestions, len(r.PerQuestion))

	writeMetricsTable(tw, r.Metrics)
	writePerQuestionTable(tw, r.PerQuestion)

	tw.Flush()
}

func writeMetricsTable(tw *tabwriter.Writer, ms []Metric) {
	fmt.Fprintf(tw, "Metrics\n\n")
	writeRow(tw, "Category", "Metric", "Value", "Unit")
	writeSeparator(tw, 4)

	for _, m := range ms {
		writeRow(tw, string(m.Category), m.Label, formatValue(m), string(m.Unit))
	}
	fmt.Fprintln(tw)
}

func writePerQuestionTable(tw *tabwriter.Writer, records []Record) {
	fmt.Fprintf(tw, "Per-Question Results\n\n")
	writeRow(tw, "ID", "Expected", "Top", "Rank", "Hit@1", "Grounded", "Refusal", "Overlap", "Coverage", "Total ms", "Status")
	writeSeparator(tw, 11)

	for _, rec := range records {
		rank := "-"
		if rec.SourceRank != nil {
			rank = fmt.Sprintf("%d", *rec.SourceRank)
		}
		status := "OK"
		if rec.Status == StatusFailed {
			status = "ERR: " + truncate(rec.Error, 40)
		}
		writeRow(tw,
			rec.ID,
			deref(rec.ExpectedSource),
			deref(rec.TopSource),
			rank,
			fmt.Sprintf("%d", rec.HitAt1),
			fmt.Sprintf("%d", rec.IsGrounded),
			fmt.Sprintf("%d", rec.IsRefusal),
			fmt.Sprintf("%.4f", rec.AnswerContextOverlap),
			fmt.Sprintf("%.4f", rec.ExpectedKeywordCoverage),
			fmt.Sprintf("%.2f", rec.TotalLatencyMs),
			status,
		)
	}
	fmt.Fprintln(tw)
}

func formatValue(m Metric) string {
	switch m.Unit {
	case UnitMs:
		return fmt.Sprintf("%.2f", m.Value)
	case UnitCount:
		return fmt.Sprintf("%.1f", m.Value)
	default:
		return fmt.Sprintf("%.4f", m.Value)
	}
}

func writeRow(tw *tabwriter.Writer, cols ...string) {
	fmt.Fprintln(tw, strings.Join(cols, "\t"))
}

func writeSeparator(tw *tabwriter.Writer, n int) {
	sep := make([]string, n)
	for i := range sep {
		sep[i] = "---"
	}
	writeRow(tw, sep...)
}

func deref(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
