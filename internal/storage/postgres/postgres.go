package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Anees44/trae-dating-project/internal/storage"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrSchemaMissing — таблица credentials не создана (миграции не применены).
var ErrSchemaMissing = errors.New("credentials table is missing: apply migrations")

type CredentialStore struct {
	db  *pgxpool.Pool
	now func() time.Time
}

// New создает новое подключение к PostgreSQL.
func New(ctx context.Context, dbURL string) (*CredentialStore, error) {
	const op = "storage/postgres/New"

	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	db, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &CredentialStore{db: db, now: time.Now}, nil
}

// Credential возвращает неистёкшее значение по ключу.
func (s *CredentialStore) Credential(ctx context.Context, key string) (string, error) {
	const op = "storage/postgres/Credential"

	if key == "" {
		return "", fmt.Errorf("%s: %w", op, storage.ErrInvalidKey)
	}

	query := `
        SELECT value
        FROM credentials
        WHERE key = $1 AND (expires_at IS NULL OR expires_at > $2)
    `

	var value string
	err := s.db.QueryRow(ctx, query, key, s.now().UTC()).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return "", fmt.Errorf("%s: %w", op, mapErr(err))
	}

	return value, nil
}

// SaveCredential делает upsert по ключу.
func (s *CredentialStore) SaveCredential(ctx context.Context, key, value string, ttl time.Duration) error {
	const op = "storage/postgres/SaveCredential"

	if key == "" {
		return fmt.Errorf("%s: %w", op, storage.ErrInvalidKey)
	}

	now := s.now().UTC()

	var expiresAt *time.Time
	if ttl > 0 {
		t := now.Add(ttl)
		expiresAt = &t
	}

	query := `
        INSERT INTO credentials(key, value, expires_at, updated_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (key) DO UPDATE
        SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at, updated_at = EXCLUDED.updated_at
    `

	if _, err := s.db.Exec(ctx, query, key, value, expiresAt, now); err != nil {
		return fmt.Errorf("%s: %w", op, mapErr(err))
	}

	return nil
}

func (s *CredentialStore) DeleteCredential(ctx context.Context, key string) error {
	const op = "storage/postgres/DeleteCredential"

	if _, err := s.db.Exec(ctx, `DELETE FROM credentials WHERE key = $1`, key); err != nil {
		return fmt.Errorf("%s: %w", op, mapErr(err))
	}

	return nil
}

// DeleteExpired удаляет все просроченные записи и возвращает их число.
func (s *CredentialStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	const op = "storage/postgres/DeleteExpired"

	tag, err := s.db.Exec(ctx, `DELETE FROM credentials WHERE expires_at <= $1`, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, mapErr(err))
	}

	return tag.RowsAffected(), nil
}

// Close закрывает пул соединений.
func (s *CredentialStore) Close() error {
	s.db.Close()
	return nil
}

func mapErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UndefinedTable {
		return fmt.Errorf("%w: %s", ErrSchemaMissing, pgErr.Message)
	}

	return err
}

var _ storage.CredentialStore = (*CredentialStore)(nil)
