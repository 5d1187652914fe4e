// transport предоставляет цепочку http.RoundTripper для исходящих вызовов бэкенда.
// Порядок по умолчанию: metadata -> timeout -> logging -> metrics.
package transport

import (
	"context"
	"net/http"
)

type CtxKey string

const (
	CtxRequestID CtxKey = "request_id"
	CtxOperation CtxKey = "operation"
)

// Middleware оборачивает RoundTripper.
type Middleware func(http.RoundTripper) http.RoundTripper

// RoundTripperFunc — адаптер функции к http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// Chain собирает цепочку: первый middleware — самый внешний.
func Chain(base http.RoundTripper, mws ...Middleware) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}

	for i := len(mws) - 1; i >= 0; i-- {
		base = mws[i](base)
	}

	return base
}

// WithRequestID кладёт request id входящего запроса для проброса в X-Request-Id.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, CtxRequestID, rid)
}

// WithOperation помечает исходящий вызов именем операции клиента (для логов и метрик).
func WithOperation(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, CtxOperation, op)
}

func requestID(ctx context.Context) string {
	rid, _ := ctx.Value(CtxRequestID).(string)
	return rid
}

func operation(ctx context.Context) string {
	if op, _ := ctx.Value(CtxOperation).(string); op != "" {
		return op
	}

	return "unknown"
}
