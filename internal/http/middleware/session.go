package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	apierrors "github.com/Anees44/trae-dating-project/internal/errors"
	"github.com/Anees44/trae-dating-project/internal/pkg/log"
	"github.com/Anees44/trae-dating-project/internal/session"
)

// LoginPath — куда отправляется запрос без действующей сессии.
const LoginPath = "/login"

// CookieOptions — параметры cookie сессии.
type CookieOptions struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

// SetCookie выставляет cookie с идентификатором сессии.
func (o CookieOptions) SetCookie(w http.ResponseWriter, sid string) {
	http.SetCookie(w, &http.Cookie{
		Name:     o.Name,
		Value:    sid,
		Path:     "/",
		MaxAge:   int(o.TTL.Seconds()),
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie удаляет cookie сессии в браузере.
func (o CookieOptions) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     o.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionCookie гарантирует идентификатор сессии: берёт его из cookie или выдаёт новый.
// Значение, не похожее на выданный порталом UUID, заменяется.
func SessionCookie(opts CookieOptions) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sid string
			if c, err := r.Cookie(opts.Name); err == nil && session.ValidID(c.Value) {
				sid = c.Value
			} else {
				sid = session.NewID()
				opts.SetCookie(w, sid)
			}

			next.ServeHTTP(w, r.WithContext(session.WithID(r.Context(), sid)))
		})
	}
}

// Resolver — проверка сессии (session.Guard).
type Resolver interface {
	Resolve(ctx context.Context, sid string) (*session.Session, error)
}

// RequireSession пускает дальше только запросы с читаемой учёткой.
// Нет учётки или она битая — 303 на /login, бэкенд не вызывается.
func RequireSession(guard Resolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := guard.Resolve(r.Context(), session.IDFrom(r.Context()))
			if err != nil {
				if errors.Is(err, session.ErrNoSession) || errors.Is(err, session.ErrInvalidSession) {
					RedirectLogin(w, r)
					return
				}

				log.From(r.Context()).Error("session_resolve_failed", slog.String("err", err.Error()))
				apierrors.WriteError(w, r, err)
				return
			}

			ctx := session.Into(r.Context(), sess)
			ctx = log.With(ctx, slog.String("user_id", sess.UserID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RedirectLogin отвечает 303 See Other на страницу входа.
func RedirectLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, LoginPath, http.StatusSeeOther)
}
