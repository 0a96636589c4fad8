package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/DjordjeVuckovic/support-rag/internal/apperr"
	"github.com/DjordjeVuckovic/support-rag/internal/domain"
)

type Answerer interface {
	Answer(ctx context.Context, question string, history []domain.Turn, template string) (domain.Answer, error)
}

// Exchange is a stored user message and the assistant reply to it.
type Exchange struct {
	UserMessage      domain.Message `json:"user_message"`
	AssistantMessage domain.Message `json:"assistant_message"`
}

type Service struct {
	store    *Store
	answerer Answerer
}

func NewService(store *Store, answerer Answerer) *Service {
	return &Service{store: store, answerer: answerer}
}

func (s *Service) Store() *Store {
	return s.store
}

// OwnedChat returns the chat only when it belongs to userID.
func (s *Service) OwnedChat(ctx context.Context, userID, chatID string) (*domain.Chat, error) {
	chat, err := s.store.GetChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if chat == nil || chat.UserID != userID {
		return nil, apperr.NewNotFound("chat", chatID)
	}
	return chat, nil
}

func (s *Service) Messages(ctx context.Context, userID, chatID string) ([]domain.Message, error) {
	if _, err := s.OwnedChat(ctx, userID, chatID); err != nil {
		return nil, err
	}
	return s.store.ListMessages(ctx, chatID)
}

// SendMessage stores the user's message, answers it from the knowledge base
// with the prior conversation as history and stores the reply.
func (s *Service) SendMessage(ctx context.Context, userID, chatID, text, templateID string) (*Exchange, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.NewValidation("message content is required")
	}

	if _, err := s.OwnedChat(ctx, userID, chatID); err != nil {
		return nil, err
	}

	var (
		templateText string
		templateRef  *string
	)
	if templateID != "" {
		tpl, err := s.store.GetTemplate(ctx, templateID)
		if err != nil {
			return nil, err
		}
		if tpl == nil {
			return nil, apperr.NewNotFound("prompt template", templateID)
		}
		templateText = tpl.Template
		templateRef = &tpl.ID
	}

	prior, err := s.store.ListMessages(ctx, chatID)
	if err != nil {
		return nil, err
	}
	history := make([]domain.Turn, 0, len(prior))
	for _, m := range prior {
		history = append(history, domain.Turn{Role: m.Role, Content: m.Content})
	}

	userMsg, err := s.store.AddMessage(ctx, NewMessage{
		ChatID:           chatID,
		UserID:           userID,
		Role:             domain.RoleUser,
		Content:          text,
		PromptTemplateID: templateRef,
	})
	if err != nil {
		return nil, err
	}

	answer, err := s.answerer.Answer(ctx, text, history, templateText)
	if err != nil {
		return nil, fmt.Errorf("answer message: %w", err)
	}

	assistantMsg, err := s.store.AddMessage(ctx, NewMessage{
		ChatID:           chatID,
		UserID:           userID,
		Role:             domain.RoleAssistant,
		Content:          answer.Text,
		PromptTemplateID: templateRef,
		Sources:          answer.Sources,
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("Message answered", "chat_id", chatID, "sources", len(answer.Sources))
	return &Exchange{UserMessage: *userMsg, AssistantMessage: *assistantMsg}, nil
}
