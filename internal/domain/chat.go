package domain

import (
	"fmt"
)

const (
	DefaultChatTitle = "New Chat"
	ChatTitleMaxLen  = 60
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleAssistant, RoleSystem:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FullName  *string   `json:"full_name"`
	CreatedAt Timestamp `json:"created_at"`
}

type Chat struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

type Message struct {
	ID               string    `json:"id"`
	ChatID           string    `json:"chat_id"`
	UserID           string    `json:"user_id"`
	Role             Role      `json:"role"`
	Content          string    `json:"content"`
	PromptTemplateID *string   `json:"prompt_template_id"`
	Sources          []string  `json:"sources"`
	CreatedAt        Timestamp `json:"created_at"`
}

// Turn is one role-tagged entry of a conversation history.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// TitleFromMessage derives a chat title from the first user message.
func TitleFromMessage(content string) string {
	r := []rune(content)
	if len(r) > ChatTitleMaxLen {
		return string(r[:ChatTitleMaxLen]) + "..."
	}
	return content
}
