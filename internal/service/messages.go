package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Anees44/trae-dating-project/internal/models"
	"github.com/Anees44/trae-dating-project/internal/session"
)

// Inbox — данные страницы переписки.
type Inbox struct {
	Conversations []models.Conversation `json:"conversations"`
	Selected      string                `json:"selected,omitempty"`
	Messages      []models.Message      `json:"messages"`
}

// Messenger — контроллер страницы переписки на один запрос.
type Messenger struct {
	svc  *Service
	sess *session.Session

	conversations []models.Conversation
	selected      string
	messages      []models.Message
	loaded        bool // messages отражают selected
}

func (s *Service) Messenger(sess *session.Session) *Messenger {
	return &Messenger{svc: s, sess: sess}
}

func (m *Messenger) view() *models.View {
	convs := m.conversations
	if convs == nil {
		convs = []models.Conversation{}
	}
	msgs := m.messages
	if msgs == nil {
		msgs = []models.Message{}
	}

	return &models.View{Data: Inbox{Conversations: convs, Selected: m.selected, Messages: msgs}}
}

func (m *Messenger) fail(ctx context.Context, op, msg string, err error) (*models.View, error) {
	err = m.svc.backendErr(ctx, op, m.sess.ID, err)
	if errors.Is(err, ErrUnauthenticated) {
		return nil, err
	}

	v := m.view()
	v.Error = msg

	return v, err
}

// Open загружает список диалогов.
func (m *Messenger) Open(ctx context.Context) (*models.View, error) {
	const op = "service/messages/Open"

	convs, err := m.svc.backend.Conversations(ctx, m.sess.Token)
	if err != nil {
		return m.fail(ctx, op, "Failed to load conversations", err)
	}

	m.conversations = convs

	return m.view(), nil
}

// Select выбирает диалог и загружает его сообщения в порядке бэкенда.
func (m *Messenger) Select(ctx context.Context, conversationID string) (*models.View, error) {
	const op = "service/messages/Select"

	if strings.TrimSpace(conversationID) == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	m.selected = conversationID

	return m.reload(ctx, op)
}

// Focus выбирает диалог без загрузки сообщений.
func (m *Messenger) Focus(conversationID string) {
	if conversationID != m.selected {
		m.loaded = false
		m.messages = nil
	}
	m.selected = conversationID
}

func (m *Messenger) reload(ctx context.Context, op string) (*models.View, error) {
	msgs, err := m.svc.backend.Messages(ctx, m.sess.Token, m.selected)
	if err != nil {
		m.loaded = false
		return m.fail(ctx, op, "Failed to load messages", err)
	}

	m.messages = msgs
	m.loaded = true

	return m.view(), nil
}

// Send отправляет сообщение в выбранный диалог. Пустой текст или отсутствие
// выбранного диалога — ErrInvalidArgument без запроса к бэкенду.
// Если бэкенд вернул созданное сообщение и список уже загружен, оно дописывается
// локально; иначе список перечитывается.
func (m *Messenger) Send(ctx context.Context, text string) (*models.View, error) {
	const op = "service/messages/Send"

	if strings.TrimSpace(text) == "" || m.selected == "" {
		return m.view(), fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	sent, err := m.svc.backend.SendMessage(ctx, m.sess.Token, models.SendMessageRequest{ChatID: m.selected, Text: text})
	if err != nil {
		return m.fail(ctx, op, "Failed to send message", err)
	}

	if sent != nil && m.loaded {
		m.messages = append(m.messages, *sent)
		return m.view(), nil
	}

	return m.reload(ctx, op)
}
