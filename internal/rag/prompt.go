package rag

import (
	"slices"
	"strings"

	"github.com/DjordjeVuckovic/support-rag/internal/domain"
	"github.com/DjordjeVuckovic/support-rag/internal/llm"
)

const baseSystemPrompt = "You are a professional call-center support chatbot. " +
	"You must answer strictly and only from the provided PDF context snippets. " +
	"If the answer is missing in context, reply exactly: '" + domain.RefusalAnswer + "'"

// SystemPrompt returns the grounding instruction, extended with a persona template when one is given.
func SystemPrompt(template string) string {
	if strings.TrimSpace(template) == "" {
		return baseSystemPrompt
	}
	return baseSystemPrompt + "\n\nPrompt template:\n" + template
}

// BuildContext renders each chunk as a block labelled with its source.
func BuildContext(chunks []domain.RetrievedChunk) string {
	blocks := make([]string, len(chunks))
	for i, c := range chunks {
		blocks[i] = "Source: " + c.Source + "\n" + c.Text
	}
	return strings.Join(blocks, "\n\n")
}

// BuildMessages orders the conversation as system, history (oldest first), then the grounded question.
// History turns with roles other than user or assistant are dropped.
func BuildMessages(question string, chunks []domain.RetrievedChunk, history []domain.Turn, template string) []llm.Message {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: domain.RoleSystem, Content: SystemPrompt(template)})

	for _, turn := range history {
		if turn.Role != domain.RoleUser && turn.Role != domain.RoleAssistant {
			continue
		}
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
	}

	var b strings.Builder
	b.WriteString("Context:\n")
	b.WriteString(BuildContext(chunks))
	b.WriteString("\n\nImportant: answer only from context sourced from PDF documents.")
	b.WriteString("\n\nCustomer question:\n")
	b.WriteString(question)

	return append(messages, llm.Message{Role: domain.RoleUser, Content: b.String()})
}

// SortedSources returns the distinct chunk sources in lexical order.
func SortedSources(chunks []domain.RetrievedChunk) []string {
	sources := make([]string, 0, len(chunks))
	for _, c := range chunks {
		sources = append(sources, c.Source)
	}
	slices.Sort(sources)
	return slices.Compact(sources)
}
