package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/Anees44/trae-dating-project/internal/models"
)

// Dashboard — GET /dashboard.
func (c *Client) Dashboard(ctx context.Context, token string) (*models.Dashboard, error) {
	var out models.Dashboard
	if err := c.do(ctx, call{op: "backend/Dashboard", method: http.MethodGet, path: "/dashboard", token: token}, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// DeleteUser — DELETE /users/{id}.
func (c *Client) DeleteUser(ctx context.Context, token, id string) error {
	return c.do(ctx, call{op: "backend/DeleteUser", method: http.MethodDelete, path: "/users/" + url.PathEscape(id), token: token}, nil)
}

// ToggleUserStatus — PUT /users/{id}/toggle-status.
// Возвращает обновлённого пользователя, если бэкенд его прислал, иначе nil.
func (c *Client) ToggleUserStatus(ctx context.Context, token, id string) (*models.AdminUser, error) {
	var raw json.RawMessage
	path := "/users/" + url.PathEscape(id) + "/toggle-status"
	if err := c.do(ctx, call{op: "backend/ToggleUserStatus", method: http.MethodPut, path: path, token: token}, &raw); err != nil {
		return nil, err
	}

	u, _ := decodeEntity(raw, "user", func(u *models.AdminUser) bool { return u.ID != "" && u.Status != "" })
	return u, nil
}
