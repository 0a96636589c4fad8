package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type GroundTruthCase struct {
	ID                     string   `json:"id" yaml:"id"`
	Question               string   `json:"question" yaml:"question"`
	ExpectedSource         *string  `json:"expected_source" yaml:"expected_source"`
	ExpectedAnswerKeywords []string `json:"expected_answer_keywords" yaml:"expected_answer_keywords"`
}

// UnmarshalJSON accepts a string or numeric id. Numbers keep their literal text.
func (c *GroundTruthCase) UnmarshalJSON(data []byte) error {
	type plain GroundTruthCase
	var aux struct {
		plain
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*c = GroundTruthCase(aux.plain)

	raw := bytes.TrimSpace(aux.ID)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		c.ID = ""
	case raw[0] == '"':
		if err := json.Unmarshal(raw, &c.ID); err != nil {
			return err
		}
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return fmt.Errorf("ground truth id must be a string or number: %w", err)
		}
		c.ID = n.String()
	}
	return nil
}

func (c GroundTruthCase) HasExpectedSource() bool {
	return c.ExpectedSource != nil && *c.ExpectedSource != ""
}

func (c GroundTruthCase) Expected() string {
	if c.ExpectedSource == nil {
		return ""
	}
	return *c.ExpectedSource
}
