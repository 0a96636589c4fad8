package metrics

import (
	"regexp"
	"strings"
)

// GroundedThreshold is the minimum answer/context token overlap for a grounded answer.
const GroundedThreshold = 0.15

var tokenPattern = regexp.MustCompile(`[a-zA-Z0-9]+`)

type TokenSet map[string]struct{}

// Tokenize lowercases text and collects its ASCII alphanumeric runs.
func Tokenize(text string) TokenSet {
	set := make(TokenSet)
	for _, tok := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		set[tok] = struct{}{}
	}
	return set
}

// KeywordSet lowercases each expected keyword and uses it verbatim as one token.
func KeywordSet(keywords []string) TokenSet {
	set := make(TokenSet, len(keywords))
	for _, k := range keywords {
		set[strings.ToLower(k)] = struct{}{}
	}
	return set
}

func (s TokenSet) intersect(other TokenSet) int {
	var n int
	for tok := range s {
		if _, ok := other[tok]; ok {
			n++
		}
	}
	return n
}

// AnswerContextOverlap is |answer ∩ context| / |answer|, 0 for an answer without tokens.
func AnswerContextOverlap(answer, context TokenSet) float64 {
	if len(answer) == 0 {
		return 0
	}
	return float64(answer.intersect(context)) / float64(len(answer))
}

// KeywordCoverage is |answer ∩ expected| / |expected|, 0 without expected keywords.
func KeywordCoverage(answer, expected TokenSet) float64 {
	if len(expected) == 0 {
		return 0
	}
	return float64(answer.intersect(expected)) / float64(len(expected))
}

// IsRefusal matches the refusal text case-insensitively anywhere in the answer.
func IsRefusal(answer, refusal string) bool {
	return strings.Contains(strings.ToLower(answer), strings.ToLower(refusal))
}

// IsGrounded requires a non-blank, non-refusal answer whose overlap reaches GroundedThreshold.
func IsGrounded(answer string, overlap float64, refused bool) bool {
	if strings.TrimSpace(answer) == "" || refused {
		return false
	}
	return overlap >= GroundedThreshold
}
