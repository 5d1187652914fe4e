package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/Anees44/trae-dating-project/internal/models"
)

// Matches — GET /matches.
func (c *Client) Matches(ctx context.Context, token string) ([]models.Match, error) {
	var out []models.Match
	if err := c.do(ctx, call{op: "backend/Matches", method: http.MethodGet, path: "/matches", token: token}, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// Conversations — GET /messages/conversations.
func (c *Client) Conversations(ctx context.Context, token string) ([]models.Conversation, error) {
	var out []models.Conversation
	if err := c.do(ctx, call{op: "backend/Conversations", method: http.MethodGet, path: "/messages/conversations", token: token}, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// Messages — GET /messages/{id}, порядок бэкенда.
func (c *Client) Messages(ctx context.Context, token, conversationID string) ([]models.Message, error) {
	var out []models.Message
	path := "/messages/" + url.PathEscape(conversationID)
	if err := c.do(ctx, call{op: "backend/Messages", method: http.MethodGet, path: path, token: token}, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// SendMessage — POST /messages. Если бэкенд вернул созданное сообщение — оно в ответе, иначе nil.
func (c *Client) SendMessage(ctx context.Context, token string, req models.SendMessageRequest) (*models.Message, error) {
	var raw json.RawMessage
	if err := c.doJSON(ctx, call{op: "backend/SendMessage", method: http.MethodPost, path: "/messages", token: token}, req, &raw); err != nil {
		return nil, err
	}

	m, _ := decodeEntity(raw, "message", func(m *models.Message) bool { return m.ID != "" })
	return m, nil
}
