package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	apierrors "github.com/Anees44/trae-dating-project/internal/errors"
	"github.com/Anees44/trae-dating-project/internal/http/middleware"
	"github.com/Anees44/trae-dating-project/internal/models"
	"github.com/Anees44/trae-dating-project/internal/service"
	"github.com/Anees44/trae-dating-project/internal/session"
)

// Handlers агрегирует зависимости HTTP-слоя.
type Handlers struct {
	Service *service.Service
	Cookie  middleware.CookieOptions
}

func New(svc *service.Service, cookie middleware.CookieOptions) *Handlers {
	return &Handlers{Service: svc, Cookie: cookie}
}

// Home — маркетинговая страница, доступна без входа.
func (h *Handlers) Home(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, &models.View{Data: models.DefaultLanding()})
}

// writeJSON — единый ответ JSON с нужным Content-Type.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: неизвестные поля запрещены.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// respond пишет состояние страницы:
//   - ErrUnauthenticated -> 303 на /login;
//   - ошибка без представления -> конверт ошибки;
//   - ошибка с представлением -> View со статусом ошибки.
func respond(w http.ResponseWriter, r *http.Request, v *models.View, err error) {
	if err != nil {
		if errors.Is(err, service.ErrUnauthenticated) {
			middleware.RedirectLogin(w, r)
			return
		}

		if v == nil {
			apierrors.WriteError(w, r, err)
			return
		}

		writeJSON(w, apierrors.Status(err), v)
		return
	}

	writeJSON(w, http.StatusOK, v)
}

// currentSession — сессия, положенная RequireSession.
func currentSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := session.From(r.Context())
	if !ok {
		middleware.RedirectLogin(w, r)
		return nil, false
	}

	return sess, true
}

func invalidArgument(w http.ResponseWriter, r *http.Request) {
	apierrors.WriteError(w, r, service.ErrInvalidArgument)
}
