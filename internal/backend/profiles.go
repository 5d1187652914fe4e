package backend

import (
	"bytes"
	"context"
	"net/http"
	"net/url"

	"github.com/Anees44/trae-dating-project/internal/models"
)

// Login — POST /auth/login.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	var out models.LoginResponse
	if err := c.doJSON(ctx, call{op: "backend/Login", method: http.MethodPost, path: "/auth/login"}, req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// MyProfile — GET /profiles/me. Нет анкеты — ErrNotFound.
func (c *Client) MyProfile(ctx context.Context, token string) (*models.Profile, error) {
	var out models.Profile
	if err := c.do(ctx, call{op: "backend/MyProfile", method: http.MethodGet, path: "/profiles/me", token: token}, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// CreateProfile — POST /profiles (multipart/form-data).
func (c *Client) CreateProfile(ctx context.Context, token string, body models.Multipart) (*models.Profile, error) {
	return c.sendProfile(ctx, call{op: "backend/CreateProfile", method: http.MethodPost, path: "/profiles", token: token}, body)
}

// UpdateProfile — PUT /profiles/{id} (multipart/form-data).
func (c *Client) UpdateProfile(ctx context.Context, token, id string, body models.Multipart) (*models.Profile, error) {
	return c.sendProfile(ctx, call{op: "backend/UpdateProfile", method: http.MethodPut, path: "/profiles/" + url.PathEscape(id), token: token}, body)
}

func (c *Client) sendProfile(ctx context.Context, cl call, body models.Multipart) (*models.Profile, error) {
	cl.body = bytes.NewReader(body.Body)
	cl.contentType = body.ContentType

	var out models.Profile
	if err := c.do(ctx, cl, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Account — GET /profiles/me в виде полей страницы настроек.
func (c *Client) Account(ctx context.Context, token string) (*models.Account, error) {
	var out models.Account
	if err := c.do(ctx, call{op: "backend/Account", method: http.MethodGet, path: "/profiles/me", token: token}, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// UpdateAccount — PUT /profiles/me (JSON).
func (c *Client) UpdateAccount(ctx context.Context, token string, acc models.Account) error {
	return c.doJSON(ctx, call{op: "backend/UpdateAccount", method: http.MethodPut, path: "/profiles/me", token: token}, acc, nil)
}

// ChangePassword — PUT /profiles/change-password.
func (c *Client) ChangePassword(ctx context.Context, token string, req models.ChangePasswordRequest) error {
	return c.doJSON(ctx, call{op: "backend/ChangePassword", method: http.MethodPut, path: "/profiles/change-password", token: token}, req, nil)
}

// ChangeEmail — PUT /profiles/change-email; возвращает адрес, который подтвердил бэкенд.
func (c *Client) ChangeEmail(ctx context.Context, token string, req models.ChangeEmailRequest) (*models.ChangeEmailResponse, error) {
	var out models.ChangeEmailResponse
	if err := c.doJSON(ctx, call{op: "backend/ChangeEmail", method: http.MethodPut, path: "/profiles/change-email", token: token}, req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// DeleteAccount — DELETE /profiles/delete.
func (c *Client) DeleteAccount(ctx context.Context, token string) error {
	return c.do(ctx, call{op: "backend/DeleteAccount", method: http.MethodDelete, path: "/profiles/delete", token: token}, nil)
}
