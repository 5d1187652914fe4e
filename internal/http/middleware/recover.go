package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	apierrors "github.com/Anees44/trae-dating-project/internal/errors"
	"github.com/Anees44/trae-dating-project/internal/pkg/log"
)

var errPanic = errors.New("handler panic")

// Recover превращает panic обработчика в 500/internal с request_id.
// Если ответ уже начат, конверт не пишется: соединение обрывается через http.ErrAbortHandler.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := record(w)

			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}

				log.From(r.Context()).LogAttrs(r.Context(), slog.LevelError, "panic",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Bool("response_started", rec.started()),
					slog.Any("reason", v),
					slog.String("stack", string(debug.Stack())),
				)

				if rec.started() {
					panic(http.ErrAbortHandler)
				}
				apierrors.WriteError(rec, r, errPanic)
			}()

			next.ServeHTTP(rec, r)
		})
	}
}
