package backend

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound — бэкенд ответил 404.
	ErrNotFound = errors.New("backend: not found")
	// ErrUnauthorized — бэкенд ответил 401/403: учётка больше не годится.
	ErrUnauthorized = errors.New("backend: unauthorized")
	// ErrUnavailable — ответа нет (сеть, таймаут, нечитаемое тело).
	ErrUnavailable = errors.New("backend: unavailable")
)

// Error — не-2xx ответ бэкенда.
// Message — поле message из тела ответа, иначе текст статуса.
type Error struct {
	Op      string
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: backend status %d: %s", e.Op, e.Status, e.Message)
}

// Is позволяет сравнивать с ErrNotFound и ErrUnauthorized через errors.Is.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	}

	return false
}

// Message возвращает сообщение бэкенда из err или fallback.
func Message(err error, fallback string) string {
	var be *Error
	if errors.As(err, &be) && be.Message != "" && be.Message != http.StatusText(be.Status) {
		return be.Message
	}

	return fallback
}
