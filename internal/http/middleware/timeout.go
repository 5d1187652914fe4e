package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Anees44/trae-dating-project/internal/pkg/deadline"
	"github.com/Anees44/trae-dating-project/internal/pkg/log"
)

// Timeout задаёт общий бюджет обработки запроса портала. Вызовы к бэкенду
// получают свой срок поверх него (transport.WithTimeout), более ранний побеждает.
// Запросы, упёршиеся в бюджет, отмечаются в логе "request_deadline_exceeded".
func Timeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := deadline.Within(r.Context(), d)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))

			if deadline.Exceeded(ctx) {
				log.From(ctx).LogAttrs(ctx, slog.LevelWarn, "request_deadline_exceeded",
					slog.String("path", r.URL.Path),
					slog.Duration("budget", d),
				)
			}
		})
	}
}
