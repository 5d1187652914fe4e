package transport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Anees44/trae-dating-project/internal/pkg/log"
)

// WithLogging — одна запись уровня Info на исходящий вызов: msg="backend_call",
// operation, method, path, status, dur. Заголовки и тело не логируются.
// Обогащённый логгер прокладывается в контекст (internal/pkg/log).
func WithLogging(base *slog.Logger) Middleware {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()
			ctx := r.Context()

			l := base.With(
				slog.String("operation", operation(ctx)),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
			if rid := r.Header.Get("X-Request-Id"); rid != "" {
				l = l.With(slog.String("request_id", rid))
			}

			resp, err := next.RoundTrip(r.WithContext(log.Into(ctx, l)))
			if err != nil {
				l.Warn("backend_call",
					slog.String("err", err.Error()),
					slog.Duration("dur", time.Since(start)),
				)
				return nil, err
			}

			l.Info("backend_call",
				slog.Int("status", resp.StatusCode),
				slog.Duration("dur", time.Since(start)),
			)

			return resp, nil
		})
	}
}
