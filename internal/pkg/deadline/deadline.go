// Package deadline — общий бюджет времени для входящих запросов и исходящих вызовов к бэкенду.
package deadline

import (
	"context"
	"errors"
	"time"
)

// Within возвращает контекст, который истекает не позже чем через d.
// Более ранний дедлайн родителя сохраняется. d <= 0 — только отмена.
func Within(parent context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, d)
}

// Exceeded сообщает, что контекст завершился именно по дедлайну.
func Exceeded(ctx context.Context) bool {
	return errors.Is(ctx.Err(), context.DeadlineExceeded)
}
