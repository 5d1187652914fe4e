package transport

import (
	"net/http"

	"github.com/google/uuid"
)

// WithMetadata добавляет в исходящий запрос заголовки:
//   - X-Request-Id (из контекста или новый UUID),
//   - User-Agent (если передан параметром).
func WithMetadata(userAgent string) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			ctx := r.Context()

			rid := requestID(ctx)
			if rid == "" {
				rid = uuid.NewString()
				ctx = WithRequestID(ctx, rid)
			}

			r = r.Clone(ctx)
			r.Header.Set("X-Request-Id", rid)
			if userAgent != "" {
				r.Header.Set("User-Agent", userAgent)
			}

			return next.RoundTrip(r)
		})
	}
}
