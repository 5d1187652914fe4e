// service содержит сценарии страниц портала поверх REST-бэкенда:
// - анкета (загрузка, проверка, сохранение с upsert);
// - мэтчи и переписка;
// - настройки аккаунта;
// - админ-панель.
//
// Контроллеры страниц живут один запрос. 401/403 бэкенда завершает сессию
// и возвращается как ErrUnauthenticated (переход на /login).
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Anees44/trae-dating-project/internal/backend"
	"github.com/Anees44/trae-dating-project/internal/config"
	"github.com/Anees44/trae-dating-project/internal/models"
	"github.com/Anees44/trae-dating-project/internal/pkg/log"
	"github.com/Anees44/trae-dating-project/internal/session"
)

var (
	// ErrUnauthenticated — сессии нет или она завершена; нужен вход.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrInvalidCredentials — неверная пара e-mail/пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidArgument — ввод отклонён до обращения к бэкенду.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound — ресурс не найден.
	ErrNotFound = errors.New("not found")
	// ErrForbidden — нет входа в админ-панель.
	ErrForbidden = errors.New("forbidden")
	// ErrAdminDisabled — учётка администратора не сконфигурирована.
	ErrAdminDisabled = errors.New("admin login disabled")
	// ErrUpstream — бэкенд ответил ошибкой.
	ErrUpstream = errors.New("upstream error")
	// ErrUnavailable — бэкенд недоступен.
	ErrUnavailable = errors.New("upstream unavailable")
)

// Backend — операции REST-бэкенда, которые использует портал.
type Backend interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)

	MyProfile(ctx context.Context, token string) (*models.Profile, error)
	CreateProfile(ctx context.Context, token string, body models.Multipart) (*models.Profile, error)
	UpdateProfile(ctx context.Context, token, id string, body models.Multipart) (*models.Profile, error)

	Account(ctx context.Context, token string) (*models.Account, error)
	UpdateAccount(ctx context.Context, token string, acc models.Account) error
	ChangePassword(ctx context.Context, token string, req models.ChangePasswordRequest) error
	ChangeEmail(ctx context.Context, token string, req models.ChangeEmailRequest) (*models.ChangeEmailResponse, error)
	DeleteAccount(ctx context.Context, token string) error

	Matches(ctx context.Context, token string) ([]models.Match, error)
	Conversations(ctx context.Context, token string) ([]models.Conversation, error)
	Messages(ctx context.Context, token, conversationID string) ([]models.Message, error)
	SendMessage(ctx context.Context, token string, req models.SendMessageRequest) (*models.Message, error)

	Dashboard(ctx context.Context, token string) (*models.Dashboard, error)
	DeleteUser(ctx context.Context, token, id string) error
	ToggleUserStatus(ctx context.Context, token, id string) (*models.AdminUser, error)
}

// Sessions — пользовательские сессии (session.Guard).
type Sessions interface {
	Establish(ctx context.Context, sid, token string) (*session.Session, error)
	End(ctx context.Context, sid string) error
}

// AdminSessions — маркеры входа в админ-панель (session.AdminSessions).
type AdminSessions interface {
	Grant(ctx context.Context, sid, email string) error
	Active(ctx context.Context, sid string) (string, error)
	Revoke(ctx context.Context, sid string) error
}

type Service struct {
	cfg      *config.Config
	backend  Backend
	sessions Sessions
	admins   AdminSessions
}

func New(b Backend, sessions Sessions, admins AdminSessions, cfg *config.Config) *Service {
	return &Service{
		cfg:      cfg,
		backend:  b,
		sessions: sessions,
		admins:   admins,
	}
}

// backendErr переводит ошибку бэкенда в ошибку сервиса. 401/403 завершает сессию sid.
// Исходная ошибка остаётся в цепочке (backend.Message достаёт текст сервера).
func (s *Service) backendErr(ctx context.Context, op, sid string, err error) error {
	lg := log.From(ctx).With("op", op)

	switch {
	case errors.Is(err, backend.ErrUnauthorized):
		if sid != "" {
			if endErr := s.sessions.End(ctx, sid); endErr != nil {
				lg.Error("session_clear_failed", slog.String("err", endErr.Error()))
			} else {
				lg.Warn("session_cleared", slog.String("reason", "backend rejected credential"))
			}
		}

		return fmt.Errorf("%s: %w: %w", op, ErrUnauthenticated, err)
	case errors.Is(err, backend.ErrNotFound):
		return fmt.Errorf("%s: %w: %w", op, ErrNotFound, err)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%s: %w", op, err)
	case backend.IsTransport(err):
		lg.Warn("backend unavailable", "err", err)
		return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
	default:
		lg.Error("backend error", "err", err)
		return fmt.Errorf("%s: %w: %w", op, ErrUpstream, err)
	}
}

func errorView(msg string) *models.View {
	return &models.View{Error: msg}
}

func notice(kind, text string) *models.Notice {
	return &models.Notice{Type: kind, Text: text}
}
