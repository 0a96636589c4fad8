package domain

const (
	// RefusalAnswer is returned verbatim when no context supports an answer.
	RefusalAnswer = "I can only answer from the provided PDF documents."
	// EmptyGenerationAnswer replaces a blank completion.
	EmptyGenerationAnswer = "I could not generate a response."
)

// Answer is a pipeline reply together with the distinct sources it drew on.
type Answer struct {
	Text    string   `json:"text"`
	Sources []string `json:"sources"`
}
