// Package groundtruth loads labelled evaluation questions from JSON or YAML files.
package groundtruth

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/DjordjeVuckovic/support-rag/internal/apperr"
	"github.com/DjordjeVuckovic/support-rag/internal/domain"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks YAML for .yaml/.yml files and JSON otherwise.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

func LoadFromFile(path string) ([]domain.GroundTruthCase, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, apperr.NewNotFoundWrap("ground truth file", path, err)
	}
	if err != nil {
		return nil, fmt.Errorf("read ground truth file: %w", err)
	}
	return Parse(data, FormatFromPath(path))
}

// Parse decodes a top-level array of cases. Cases without an id get "q<position>".
func Parse(data []byte, format Format) ([]domain.GroundTruthCase, error) {
	var cases []domain.GroundTruthCase

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &cases); err != nil {
			return nil, fmt.Errorf("parse ground truth YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cases); err != nil {
			return nil, fmt.Errorf("parse ground truth JSON: %w", err)
		}
	}

	for i := range cases {
		if strings.TrimSpace(cases[i].ID) == "" {
			cases[i].ID = fmt.Sprintf("q%d", i+1)
		}
		if cases[i].ExpectedAnswerKeywords == nil {
			cases[i].ExpectedAnswerKeywords = []string{}
		}
	}
	return cases, nil
}
