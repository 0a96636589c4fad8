// Package chat keeps users, chats, messages and prompt templates on top of a
// document store and answers user messages through the retrieval pipeline.
package chat

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/DjordjeVuckovic/support-rag/internal/apperr"
	"github.com/DjordjeVuckovic/support-rag/internal/domain"
	"github.com/DjordjeVuckovic/support-rag/internal/storage"
	"github.com/google/uuid"
)

const (
	fieldUsername = "username"
	fieldUserID   = "user_id"
	fieldChatID   = "chat_id"
)

type Store struct {
	docs        storage.DocumentStore
	collections storage.Collections
}

func NewStore(docs storage.DocumentStore, collections storage.Collections) *Store {
	return &Store{docs: docs, collections: collections}
}

// CreateUser returns the existing user when the username is taken.
func (s *Store) CreateUser(ctx context.Context, username string, fullName *string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperr.NewValidation("username is required")
	}

	existing, err := s.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	user := domain.User{
		ID:        uuid.NewString(),
		Username:  username,
		FullName:  fullName,
		CreatedAt: domain.Now(),
	}
	err = storage.PutJSON(ctx, s.docs, s.collections.Users, user.ID, user, map[string]string{fieldUsername: username})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return storage.GetJSON[domain.User](ctx, s.docs, s.collections.Users, id)
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	users, err := storage.QueryJSON[domain.User](ctx, s.docs, s.collections.Users, storage.Filter{fieldUsername: username})
	if err != nil {
		return nil, fmt.Errorf("find user %q: %w", username, err)
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

func (s *Store) CreateChat(ctx context.Context, userID string) (*domain.Chat, error) {
	now := domain.Now()
	chat := domain.Chat{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     domain.DefaultChatTitle,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.putChat(ctx, chat); err != nil {
		return nil, err
	}
	return &chat, nil
}

func (s *Store) GetChat(ctx context.Context, id string) (*domain.Chat, error) {
	return storage.GetJSON[domain.Chat](ctx, s.docs, s.collections.Chats, id)
}

// ListChats returns the user's chats, most recently updated first.
func (s *Store) ListChats(ctx context.Context, userID string) ([]domain.Chat, error) {
	chats, err := storage.QueryJSON[domain.Chat](ctx, s.docs, s.collections.Chats, storage.Filter{fieldUserID: userID})
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	slices.SortStableFunc(chats, func(a, b domain.Chat) int {
		return b.UpdatedAt.Compare(a.UpdatedAt.Time)
	})
	return chats, nil
}

type NewMessage struct {
	ChatID           string
	UserID           string
	Role             domain.Role
	Content          string
	PromptTemplateID *string
	Sources          []string
}

// AddMessage stores a message and bumps the chat's updated_at. The first user
// message of an untitled chat becomes its title.
func (s *Store) AddMessage(ctx context.Context, m NewMessage) (*domain.Message, error) {
	chat, err := s.GetChat(ctx, m.ChatID)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, apperr.NewNotFound("chat", m.ChatID)
	}

	sources := m.Sources
	if sources == nil {
		sources = []string{}
	}

	msg := domain.Message{
		ID:               uuid.NewString(),
		ChatID:           m.ChatID,
		UserID:           m.UserID,
		Role:             m.Role,
		Content:          m.Content,
		PromptTemplateID: m.PromptTemplateID,
		Sources:          sources,
		CreatedAt:        domain.Now(),
	}
	err = storage.PutJSON(ctx, s.docs, s.collections.Messages, msg.ID, msg, map[string]string{fieldChatID: msg.ChatID})
	if err != nil {
		return nil, fmt.Errorf("store message: %w", err)
	}

	chat.UpdatedAt = msg.CreatedAt
	if m.Role == domain.RoleUser && chat.Title == domain.DefaultChatTitle {
		chat.Title = domain.TitleFromMessage(m.Content)
	}
	if err := s.putChat(ctx, *chat); err != nil {
		return nil, err
	}

	return &msg, nil
}

// ListMessages returns the chat's messages oldest first.
func (s *Store) ListMessages(ctx context.Context, chatID string) ([]domain.Message, error) {
	msgs, err := storage.QueryJSON[domain.Message](ctx, s.docs, s.collections.Messages, storage.Filter{fieldChatID: chatID})
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	slices.SortStableFunc(msgs, func(a, b domain.Message) int {
		return a.CreatedAt.Compare(b.CreatedAt.Time)
	})
	return msgs, nil
}

func (s *Store) putChat(ctx context.Context, chat domain.Chat) error {
	err := storage.PutJSON(ctx, s.docs, s.collections.Chats, chat.ID, chat, map[string]string{fieldUserID: chat.UserID})
	if err != nil {
		return fmt.Errorf("store chat: %w", err)
	}
	return nil
}
