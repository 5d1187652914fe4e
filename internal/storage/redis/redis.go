// redis — реализация storage.CredentialStore поверх Redis с нативным TTL ключей.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Anees44/trae-dating-project/internal/storage"
	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "portal:cred:"

type CredentialStore struct {
	rdb    *redis.Client
	prefix string
}

// New создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// Если prefix пустой — используется "portal:cred:".
func New(ctx context.Context, redisURL, prefix string) (*CredentialStore, error) {
	const op = "storage/redis/New"

	if prefix == "" {
		prefix = defaultPrefix
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rdb := redis.NewClient(opt)

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &CredentialStore{rdb: rdb, prefix: prefix}, nil
}

func (s *CredentialStore) key(k string) string { return s.prefix + k }

func (s *CredentialStore) Credential(ctx context.Context, key string) (string, error) {
	const op = "storage/redis/Credential"

	if key == "" {
		return "", fmt.Errorf("%s: %w", op, storage.ErrInvalidKey)
	}

	v, err := s.rdb.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	return v, nil
}

// SaveCredential пишет значение через SET; ttl<=0 — ключ без срока жизни.
func (s *CredentialStore) SaveCredential(ctx context.Context, key, value string, ttl time.Duration) error {
	const op = "storage/redis/SaveCredential"

	if key == "" {
		return fmt.Errorf("%s: %w", op, storage.ErrInvalidKey)
	}

	if ttl < 0 {
		ttl = 0
	}

	if err := s.rdb.Set(ctx, s.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *CredentialStore) DeleteCredential(ctx context.Context, key string) error {
	const op = "storage/redis/DeleteCredential"

	if err := s.rdb.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *CredentialStore) Close() error { return s.rdb.Close() }

var _ storage.CredentialStore = (*CredentialStore)(nil)
