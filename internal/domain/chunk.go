package domain

import "github.com/google/uuid"

const UnknownSource = "unknown.pdf"

type DocumentChunk struct {
	ID        uuid.UUID `json:"id"`
	Source    string    `json:"source"`
	Text      string    `json:"chunk_text"`
	Embedding []float32 `json:"-"`
}

// RetrievedChunk is a chunk returned by a similarity query, nearest first.
// Distance is nil when the backend does not report one.
type RetrievedChunk struct {
	Source   string   `json:"source"`
	Text     string   `json:"chunk_text"`
	Distance *float64 `json:"distance,omitempty"`
}

func NewRetrievedChunk(source, text string, distance *float64) RetrievedChunk {
	if source == "" {
		source = UnknownSource
	}
	return RetrievedChunk{Source: source, Text: text, Distance: distance}
}

// SourceDocument is the extracted text of one ingested file.
type SourceDocument struct {
	Path   string
	Source string
	Text   string
}
