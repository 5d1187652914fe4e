package service

// Тесты сервисного слоя портала.
//
//  Проверяем:
//  - что ввод, отклонённый формой, не порождает запросов к бэкенду;
//  - маппинг ошибок backend -> service (Unauthenticated / NotFound / Upstream / Unavailable);
//  - завершение сессии при 401 бэкенда;
//  - upsert анкеты, симметрию мэтчей, локальную правку списков после мутаций;
//  - вход администратора с ровно одной загрузкой дашборда.
//
// Запуск:
//   go test ./internal/service -v -race -count=1
//
// Примечание: моки лежат в пакете /mocks (MockBackend).

import (
	"context"
	"testing"
	"time"

	"github.com/Anees44/trae-dating-project/internal/backend"
	"github.com/Anees44/trae-dating-project/internal/config"
	"github.com/Anees44/trae-dating-project/internal/session"
	"github.com/Anees44/trae-dating-project/internal/storage"
	"github.com/Anees44/trae-dating-project/internal/storage/memory"
	"github.com/Anees44/trae-dating-project/mocks"
	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "s3cret-pass"
	adminToken    = "portal-admin-token"
)

type fixture struct {
	svc     *Service
	backend *mocks.MockBackend
	store   *memory.CredentialStore
	guard   *session.Guard
	cfg     *config.Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{
		Backend: config.BackendConfig{AdminToken: adminToken},
		Admin:   config.AdminConfig{Email: adminEmail, PasswordHash: string(hash)},
	}

	st := memory.New()
	guard := session.NewGuard(st, session.NewJWTVerifier("", ""), time.Hour)
	mb := mocks.NewMockBackend(ctrl)

	return &fixture{
		svc:     New(mb, guard, session.NewAdminSessions(st, time.Hour), cfg),
		backend: mb,
		store:   st,
		guard:   guard,
		cfg:     cfg,
	}
}

func tokenFor(t *testing.T, userID string) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": userID}).SignedString([]byte("k"))
	require.NoError(t, err)
	return tok
}

// login сохраняет учётку пользователя и возвращает его сессию.
func (f *fixture) login(t *testing.T, userID string) *session.Session {
	t.Helper()
	sess, err := f.guard.Establish(context.Background(), session.NewID(), tokenFor(t, userID))
	require.NoError(t, err)
	return sess
}

func (f *fixture) hasCredential(t *testing.T, sid string) bool {
	t.Helper()
	_, err := f.store.Credential(context.Background(), storage.Key(session.ScopeUser, sid))
	return err == nil
}

func status(code int, msg string) error {
	return &backend.Error{Op: "test", Status: code, Message: msg}
}
