package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Anees44/trae-dating-project/internal/models"
	"github.com/Anees44/trae-dating-project/internal/pkg/log"
	"github.com/Anees44/trae-dating-project/internal/session"
)

// Login — вход пользователя. Учётка сохраняется под новым идентификатором сессии.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	const op = "http/handlers/Login"

	var in models.LoginRequest
	if err := decodeStrict(r, &in); err != nil {
		invalidArgument(w, r)
		return
	}

	sid := session.NewID()

	v, _, err := h.Service.Login(r.Context(), sid, in.Email, in.Password)
	if err == nil {
		// прежний sid отзывается; сбой не мешает входу под новым.
		if old := session.IDFrom(r.Context()); old != "" {
			if _, lerr := h.Service.Logout(r.Context(), old); lerr != nil {
				log.From(r.Context()).Warn("previous_session_not_revoked",
					slog.String("op", op),
					slog.String("err", lerr.Error()),
				)
			}
		}
		h.Cookie.SetCookie(w, sid)
	}

	respond(w, r, v, err)
}

// Logout завершает сессию и удаляет cookie.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	v, err := h.Service.Logout(r.Context(), session.IDFrom(r.Context()))
	if err == nil {
		h.Cookie.ClearCookie(w)
	}

	respond(w, r, v, err)
}
