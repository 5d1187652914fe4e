// memory — in-process реализация storage.CredentialStore для local-окружения и тестов.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Anees44/trae-dating-project/internal/storage"
)

type entry struct {
	value     string
	expiresAt time.Time // zero — бессрочно
}

type CredentialStore struct {
	mu    sync.RWMutex
	items map[string]entry
	now   func() time.Time
}

func New() *CredentialStore {
	return &CredentialStore{
		items: make(map[string]entry),
		now:   time.Now,
	}
}

// Credential возвращает значение; истёкшие записи удаляются лениво.
func (s *CredentialStore) Credential(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if key == "" {
		return "", storage.ErrInvalidKey
	}

	s.mu.RLock()
	e, ok := s.items[key]
	s.mu.RUnlock()

	if !ok {
		return "", storage.ErrNotFound
	}

	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		s.mu.Lock()
		delete(s.items, key)
		s.mu.Unlock()

		return "", storage.ErrNotFound
	}

	return e.value, nil
}

func (s *CredentialStore) SaveCredential(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if key == "" {
		return storage.ErrInvalidKey
	}

	e := entry{value: value}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	s.items[key] = e
	s.mu.Unlock()

	return nil
}

func (s *CredentialStore) DeleteCredential(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()

	return nil
}

// DeleteExpired вычищает истёкшие записи и возвращает их число.
func (s *CredentialStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for k, e := range s.items {
		if !e.expiresAt.IsZero() && !now.Before(e.expiresAt) {
			delete(s.items, k)
			n++
		}
	}

	return n, nil
}

// Len — число записей, включая ещё не вычищенные истёкшие.
func (s *CredentialStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items)
}

func (s *CredentialStore) Close() error { return nil }

var _ storage.CredentialStore = (*CredentialStore)(nil)
