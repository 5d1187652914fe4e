package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Anees44/trae-dating-project/internal/pkg/log"
)

// Logging кладёт request-scoped логгер в контекст и пишет запись "http" по завершении запроса.
func Logging(l *slog.Logger) Middleware {
	if l == nil {
		l = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqLogger := l
			if rid := r.Header.Get("X-Request-Id"); rid != "" {
				reqLogger = reqLogger.With(slog.String("request_id", rid))
			}
			r = r.WithContext(log.Into(r.Context(), reqLogger))

			rec := record(w)
			start := time.Now()
			next.ServeHTTP(rec, r)

			reqLogger.LogAttrs(r.Context(), slog.LevelInfo, "http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rec.status()),
				slog.Duration("dur", time.Since(start)),
				slog.Int("bytes", rec.bytes),
			)
		})
	}
}
