// storage содержит контракт хранилища учётных данных сессии портала.
//
// Значение — одна строка (bearer-токен бэкенда или маркер админ-сессии) под ключом
// "<scope>:<session id>". Реализации: memory, redis, postgres, mongo.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound — ключа нет или срок жизни истёк.
	ErrNotFound = errors.New("credential not found")
	// ErrInvalidKey — пустой ключ.
	ErrInvalidKey = errors.New("invalid credential key")
)

// Credentials — операции над учётками.
type Credentials interface {
	// Credential возвращает значение по ключу или ErrNotFound.
	Credential(ctx context.Context, key string) (string, error)
	// SaveCredential сохраняет значение. ttl<=0 — без срока жизни.
	SaveCredential(ctx context.Context, key, value string, ttl time.Duration) error
	// DeleteCredential удаляет ключ. Отсутствие ключа — не ошибка.
	DeleteCredential(ctx context.Context, key string) error
}

// CredentialStore — верхнеуровневый интерфейс для внедрения зависимости.
type CredentialStore interface {
	Credentials
	Close() error
}

// Key собирает ключ хранилища из области и идентификатора сессии.
func Key(scope, sid string) string { return scope + ":" + sid }
