package transport

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/Anees44/trae-dating-project/internal/pkg/deadline"
)

// WithTimeout ограничивает один вызов к бэкенду сроком d.
// Дедлайн входящего запроса продолжает действовать: побеждает более ранний.
// cancel вызывается при закрытии тела ответа или при ошибке. d <= 0 — без ограничения.
func WithTimeout(d time.Duration) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		if d <= 0 {
			return next
		}

		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			ctx, cancel := deadline.Within(r.Context(), d)

			resp, err := next.RoundTrip(r.WithContext(ctx))
			if err != nil {
				cancel()
				return nil, err
			}

			resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}

			return resp, nil
		})
	}
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}
