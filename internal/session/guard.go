package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Anees44/trae-dating-project/internal/pkg/log"
	"github.com/Anees44/trae-dating-project/internal/pkg/redact"
	"github.com/Anees44/trae-dating-project/internal/storage"
)

// Guard проверяет наличие и читаемость учётки перед любым защищённым действием.
type Guard struct {
	store    storage.Credentials
	verifier ClaimsVerifier
	ttl      time.Duration
	now      func() time.Time
}

// NewGuard: ttl — срок хранения учётки, если в токене нет exp.
func NewGuard(store storage.Credentials, verifier ClaimsVerifier, ttl time.Duration) *Guard {
	return &Guard{
		store:    store,
		verifier: verifier,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Resolve возвращает сессию по sid.
// Нет учётки — ErrNoSession. Учётка не разбирается — она удаляется, ErrInvalidSession.
func (g *Guard) Resolve(ctx context.Context, sid string) (*Session, error) {
	const op = "session/guard/Resolve"

	if sid == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrNoSession)
	}

	token, err := g.store.Credential(ctx, storage.Key(ScopeUser, sid))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNoSession)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if token == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrNoSession)
	}

	claims, err := g.verifier.Verify(token)
	if err != nil {
		g.clear(ctx, sid, err)
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidSession)
	}

	return &Session{
		ID:        sid,
		Token:     token,
		UserID:    claims.UserID,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}

// Establish проверяет токен, выданный логином бэкенда, и сохраняет его под sid.
func (g *Guard) Establish(ctx context.Context, sid, token string) (*Session, error) {
	const op = "session/guard/Establish"

	claims, err := g.verifier.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrInvalidSession, err)
	}

	ttl := g.ttl
	if !claims.ExpiresAt.IsZero() {
		ttl = claims.ExpiresAt.Sub(g.now())
	}
	// токен в пределах leeway уже истёк: ttl <= 0 для хранилища значит "без срока".
	if ttl <= 0 {
		return nil, fmt.Errorf("%s: %w: token expired", op, ErrInvalidSession)
	}

	if err := g.store.SaveCredential(ctx, storage.Key(ScopeUser, sid), token, ttl); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("session_established",
		slog.String("op", op),
		slog.String("user_id", claims.UserID),
		slog.String("token", redact.Token(token)),
		slog.Duration("ttl", ttl),
	)

	return &Session{ID: sid, Token: token, UserID: claims.UserID, ExpiresAt: claims.ExpiresAt}, nil
}

// End удаляет учётку (logout, 401 бэкенда, удаление аккаунта).
func (g *Guard) End(ctx context.Context, sid string) error {
	const op = "session/guard/End"

	if sid == "" {
		return nil
	}

	if err := g.store.DeleteCredential(ctx, storage.Key(ScopeUser, sid)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (g *Guard) clear(ctx context.Context, sid string, cause error) {
	lg := log.From(ctx)

	if err := g.End(ctx, sid); err != nil {
		lg.Error("session_clear_failed", slog.String("err", err.Error()))
		return
	}

	lg.Warn("session_cleared", slog.String("reason", cause.Error()))
}
