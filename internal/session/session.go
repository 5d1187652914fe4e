// session — сессия пользователя портала.
//
// Браузер держит только случайный идентификатор сессии (cookie); bearer-токен бэкенда
// лежит в storage под ключом "user:<sid>", маркер админ-сессии — под "admin:<sid>".
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Области ключей хранилища.
const (
	ScopeUser  = "user"
	ScopeAdmin = "admin"
)

var (
	// ErrNoSession — учётки нет, нужен вход.
	ErrNoSession = errors.New("no session")
	// ErrInvalidSession — токен не разобран или истёк; учётка уже удалена.
	ErrInvalidSession = errors.New("invalid session")
)

// Session — разобранная учётка текущего пользователя.
type Session struct {
	ID        string
	Token     string
	UserID    string
	ExpiresAt time.Time // zero — exp в токене не было
}

// NewID генерирует идентификатор сессии для cookie.
func NewID() string { return uuid.NewString() }

// ValidID проверяет, что значение cookie похоже на выданный нами идентификатор.
func ValidID(sid string) bool {
	_, err := uuid.Parse(sid)
	return err == nil
}

type (
	ctxKey   struct{}
	ctxIDKey struct{}
)

// Into кладёт сессию в контекст.
func Into(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// From достаёт сессию из контекста.
func From(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}

// WithID кладёт идентификатор сессии (из cookie) в контекст.
func WithID(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, ctxIDKey{}, sid)
}

// IDFrom достаёт идентификатор сессии из контекста ("" — нет).
func IDFrom(ctx context.Context) string {
	sid, _ := ctx.Value(ctxIDKey{}).(string)
	return sid
}
