// Package chunker splits document text into overlapping fixed-size windows.
//
// Sizes are measured in characters (Unicode code points), not tokens.
package chunker

import (
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/support-rag/internal/apperr"
)

const (
	DefaultChunkSize = 1000
	DefaultOverlap   = 150
)

type Config struct {
	ChunkSize int `env:"CHUNK_SIZE" envDefault:"1000"`
	Overlap   int `env:"CHUNK_OVERLAP" envDefault:"150"`
}

func DefaultConfig() Config {
	return Config{ChunkSize: DefaultChunkSize, Overlap: DefaultOverlap}
}

func (c Config) Validate() error {
	if c.ChunkSize <= 0 {
		return apperr.NewInvalidArgument("chunk_size", "must be positive, got "+strconv.Itoa(c.ChunkSize))
	}
	if c.Overlap < 0 {
		return apperr.NewInvalidArgument("overlap", "must not be negative, got "+strconv.Itoa(c.Overlap))
	}
	if c.Overlap >= c.ChunkSize {
		return apperr.NewInvalidArgument("overlap", "must be smaller than chunk_size")
	}
	return nil
}

type Splitter struct {
	cfg Config
}

func New(cfg Config) (*Splitter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Splitter{cfg: cfg}, nil
}

func (s *Splitter) Split(text string) []string {
	return split(text, s.cfg.ChunkSize, s.cfg.Overlap)
}

// Split trims text and cuts it into windows of at most chunkSize characters,
// each starting overlap characters before the end of the previous one.
// Whitespace-only windows are dropped.
func Split(text string, chunkSize, overlap int) ([]string, error) {
	if err := (Config{ChunkSize: chunkSize, Overlap: overlap}).Validate(); err != nil {
		return nil, err
	}
	return split(text, chunkSize, overlap), nil
}

func split(text string, chunkSize, overlap int) []string {
	runes := []rune(strings.TrimSpace(text))
	n := len(runes)

	var chunks []string
	start := 0
	for start < n {
		end := min(start+chunkSize, n)
		window := string(runes[start:end])
		if strings.TrimSpace(window) != "" {
			chunks = append(chunks, window)
		}
		if end == n {
			break
		}
		start = max(0, end-overlap)
	}

	return chunks
}
