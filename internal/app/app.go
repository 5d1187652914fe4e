// app собирает зависимости портала: хранилище учёток, клиент бэкенда, сервис и роутер.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Anees44/trae-dating-project/internal/backend"
	"github.com/Anees44/trae-dating-project/internal/backend/transport"
	"github.com/Anees44/trae-dating-project/internal/config"
	porthttp "github.com/Anees44/trae-dating-project/internal/http"
	"github.com/Anees44/trae-dating-project/internal/http/middleware"
	"github.com/Anees44/trae-dating-project/internal/service"
	"github.com/Anees44/trae-dating-project/internal/session"
	"github.com/Anees44/trae-dating-project/internal/storage"
	"github.com/Anees44/trae-dating-project/internal/storage/memory"
	"github.com/Anees44/trae-dating-project/internal/storage/mongo"
	"github.com/Anees44/trae-dating-project/internal/storage/postgres"
	"github.com/Anees44/trae-dating-project/internal/storage/redis"
)

// App — собранный портал.
type App struct {
	Handler http.Handler
	Store   storage.CredentialStore
}

// New собирает портал. reg — регистратор метрик исходящих вызовов.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger, reg prometheus.Registerer) (*App, error) {
	const op = "internal/app/New"

	store, err := NewStore(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	client, err := NewBackend(cfg, log, reg)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	guard := session.NewGuard(store, session.NewJWTVerifier(cfg.Session.JWTSecret, cfg.Session.JWTIssuer), cfg.Session.TTL)
	admins := session.NewAdminSessions(store, cfg.Session.TTL)
	svc := service.New(client, guard, admins, cfg)

	handler := porthttp.NewRouter(svc, porthttp.Options{
		Logger:  log,
		Timeout: cfg.Timeouts.Service,
		Cookie: middleware.CookieOptions{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.CookieSecure,
			TTL:    cfg.Session.TTL,
		},
		Guard: guard,
	})

	return &App{Handler: handler, Store: store}, nil
}

// NewStore открывает хранилище учёток по storage.driver.
func NewStore(ctx context.Context, cfg config.StorageConfig) (storage.CredentialStore, error) {
	const op = "internal/app/NewStore"

	var (
		store storage.CredentialStore
		err   error
	)

	switch cfg.Driver {
	case config.DriverMemory, "":
		store = memory.New()
	case config.DriverRedis:
		store, err = redis.New(ctx, cfg.RedisURL, cfg.KeyPrefix)
	case config.DriverPostgres:
		store, err = postgres.New(ctx, cfg.PostgresURL)
	case config.DriverMongo:
		store, err = mongo.New(ctx, cfg.MongoURL)
	default:
		err = fmt.Errorf("unknown driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", op, cfg.Driver, err)
	}

	return store, nil
}

// NewBackend собирает клиент бэкенда с цепочкой metadata -> timeout -> logging -> metrics.
func NewBackend(cfg *config.Config, log *slog.Logger, reg prometheus.Registerer) (*backend.Client, error) {
	rt := transport.Chain(http.DefaultTransport,
		transport.WithMetadata(cfg.Backend.UserAgent),
		transport.WithTimeout(cfg.Timeouts.Backend),
		transport.WithLogging(log),
		transport.WithMetrics(transport.NewMetrics(reg)),
	)

	return backend.New(cfg.Backend.BaseURL, rt)
}

// Expirer — хранилище, которому нужна периодическая очистка истёкших записей.
type Expirer interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// StartJanitor запускает фоновую очистку, если хранилище её поддерживает.
// Redis и Mongo истекают записи сами.
func StartJanitor(ctx context.Context, store storage.CredentialStore, log *slog.Logger, period time.Duration) {
	exp, ok := store.(Expirer)
	if !ok || period <= 0 {
		return
	}

	go func() {
		t := time.NewTicker(period)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				n, err := exp.DeleteExpired(ctx, time.Now().UTC())
				if err != nil {
					log.Error("credential_janitor_failed", slog.String("err", err.Error()))
					continue
				}
				if n > 0 {
					log.Debug("credential_janitor", slog.Int64("deleted", n))
				}
			}
		}
	}()
}
