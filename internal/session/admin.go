package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Anees44/trae-dating-project/internal/storage"
)

// AdminSessions — маркер входа в админ-панель под ключом "admin:<sid>".
// Значение — e-mail администратора.
type AdminSessions struct {
	store storage.Credentials
	ttl   time.Duration
}

func NewAdminSessions(store storage.Credentials, ttl time.Duration) *AdminSessions {
	return &AdminSessions{store: store, ttl: ttl}
}

func (a *AdminSessions) Grant(ctx context.Context, sid, email string) error {
	const op = "session/admin/Grant"

	if err := a.store.SaveCredential(ctx, storage.Key(ScopeAdmin, sid), email, a.ttl); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Active возвращает e-mail администратора или ErrNoSession.
func (a *AdminSessions) Active(ctx context.Context, sid string) (string, error) {
	const op = "session/admin/Active"

	if sid == "" {
		return "", fmt.Errorf("%s: %w", op, ErrNoSession)
	}

	email, err := a.store.Credential(ctx, storage.Key(ScopeAdmin, sid))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", fmt.Errorf("%s: %w", op, ErrNoSession)
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	return email, nil
}

func (a *AdminSessions) Revoke(ctx context.Context, sid string) error {
	const op = "session/admin/Revoke"

	if err := a.store.DeleteCredential(ctx, storage.Key(ScopeAdmin, sid)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
