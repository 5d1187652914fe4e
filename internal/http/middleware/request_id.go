package middleware

import (
	"net/http"

	"github.com/Anees44/trae-dating-project/internal/backend/transport"
	"github.com/google/uuid"
)

// RequestID обеспечивает наличие X-Request-Id:
//  1. берёт заголовок входящего запроса, если он есть;
//  2. иначе генерирует UUID;
//  3. кладёт id в заголовки ответа и запроса и в контекст (transport.CtxRequestID),
//     откуда его пробрасывает в бэкенд transport.WithMetadata.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-Id")
			if id == "" {
				id = uuid.NewString()
				r.Header.Set("X-Request-Id", id)
			}
			w.Header().Set("X-Request-Id", id)

			ctx := transport.WithRequestID(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
