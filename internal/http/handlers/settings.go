package handlers

import (
	"net/http"

	"github.com/Anees44/trae-dating-project/internal/models"
)

func (h *Handlers) GetSettings(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	v, err := h.Service.Settings(sess).Load(r.Context())
	respond(w, r, v, err)
}

func (h *Handlers) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	var in models.Account
	if err := decodeStrict(r, &in); err != nil {
		invalidArgument(w, r)
		return
	}

	v, err := h.Service.Settings(sess).Update(r.Context(), in)
	respond(w, r, v, err)
}

type changePasswordRequest struct {
	OldPassword     string `json:"oldPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (h *Handlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	var in changePasswordRequest
	if err := decodeStrict(r, &in); err != nil {
		invalidArgument(w, r)
		return
	}

	v, err := h.Service.Settings(sess).ChangePassword(r.Context(), in.OldPassword, in.NewPassword, in.ConfirmPassword)
	respond(w, r, v, err)
}

func (h *Handlers) ChangeEmail(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	var in models.ChangeEmailRequest
	if err := decodeStrict(r, &in); err != nil {
		invalidArgument(w, r)
		return
	}

	v, err := h.Service.Settings(sess).ChangeEmail(r.Context(), in.NewEmail)
	respond(w, r, v, err)
}

// DeleteAccount удаляет аккаунт; при успехе cookie сессии тоже удаляется.
func (h *Handlers) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	v, err := h.Service.Settings(sess).DeleteAccount(r.Context())
	if err == nil {
		h.Cookie.ClearCookie(w)
	}

	respond(w, r, v, err)
}
