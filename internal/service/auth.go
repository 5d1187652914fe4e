package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Anees44/trae-dating-project/internal/backend"
	"github.com/Anees44/trae-dating-project/internal/models"
	"github.com/Anees44/trae-dating-project/internal/pkg/log"
	"github.com/Anees44/trae-dating-project/internal/pkg/redact"
	"github.com/Anees44/trae-dating-project/internal/session"
)

// Login проверяет пару через бэкенд и сохраняет полученный токен под sid.
func (s *Service) Login(ctx context.Context, sid, email, password string) (*models.View, *session.Session, error) {
	const op = "service/auth/Login"

	email = strings.TrimSpace(email)
	lg := log.From(ctx).With("op", op, "email", redact.Email(email))

	if email == "" || password == "" {
		return errorView("Email and password are required."), nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	res, err := s.backend.Login(ctx, models.LoginRequest{Email: email, Password: password})
	if err != nil {
		var be *backend.Error
		if errors.As(err, &be) && be.Status < 500 {
			lg.Warn("login rejected", "status", be.Status)
			return errorView(backend.Message(err, "Invalid email or password.")), nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		return errorView("Login failed. Please try again."), nil, s.backendErr(ctx, op, "", err)
	}

	sess, err := s.sessions.Establish(ctx, sid, res.Token)
	if err != nil {
		lg.Error("establish session failed", "err", err)
		return errorView("Login failed. Please try again."), nil, fmt.Errorf("%s: %w: %w", op, ErrUpstream, err)
	}

	lg.Info("user logged in", "user_id", sess.UserID)

	return &models.View{
		Data:     res.User,
		Redirect: models.RedirectTo("/dashboard", 0),
	}, sess, nil
}

// Logout завершает пользовательскую и админскую сессии sid.
func (s *Service) Logout(ctx context.Context, sid string) (*models.View, error) {
	const op = "service/auth/Logout"

	if err := s.sessions.End(ctx, sid); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.admins.Revoke(ctx, sid); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.View{Redirect: models.RedirectTo("/login", 0)}, nil
}
