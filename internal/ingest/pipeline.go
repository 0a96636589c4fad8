package ingest

import "context"

// Summary counts what one ingestion run indexed.
type Summary struct {
	Files   int `json:"files"`
	Chunks  int `json:"chunks"`
	Skipped int `json:"skipped"`
}

// Pipeline rebuilds the chunk collection from its sources.
type Pipeline interface {
	Run(ctx context.Context) (Summary, error)
}
