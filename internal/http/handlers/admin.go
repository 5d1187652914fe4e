package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/Anees44/trae-dating-project/internal/errors"
	"github.com/Anees44/trae-dating-project/internal/service"
	"github.com/Anees44/trae-dating-project/internal/session"
)

type adminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handlers) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var in adminLoginRequest
	if err := decodeStrict(r, &in); err != nil {
		invalidArgument(w, r)
		return
	}

	v, err := h.Service.AdminPanel(session.IDFrom(r.Context())).Login(r.Context(), in.Email, in.Password)
	respond(w, r, v, err)
}

// adminPanel — панель с восстановленным входом или 403.
func (h *Handlers) adminPanel(w http.ResponseWriter, r *http.Request) (*service.AdminPanel, bool) {
	p := h.Service.AdminPanel(session.IDFrom(r.Context()))
	if err := p.Resume(r.Context()); err != nil {
		apierrors.WriteError(w, r, err)
		return nil, false
	}

	return p, true
}

func (h *Handlers) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	p, ok := h.adminPanel(w, r)
	if !ok {
		return
	}

	v, err := p.Dashboard(r.Context())
	respond(w, r, v, err)
}

func (h *Handlers) AdminToggleUser(w http.ResponseWriter, r *http.Request) {
	p, ok := h.adminPanel(w, r)
	if !ok {
		return
	}

	v, err := p.Toggle(r.Context(), chi.URLParam(r, "id"))
	respond(w, r, v, err)
}

func (h *Handlers) AdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	p, ok := h.adminPanel(w, r)
	if !ok {
		return
	}

	v, err := p.Delete(r.Context(), chi.URLParam(r, "id"))
	respond(w, r, v, err)
}
