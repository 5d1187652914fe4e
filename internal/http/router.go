package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Anees44/trae-dating-project/internal/http/handlers"
	"github.com/Anees44/trae-dating-project/internal/http/middleware"
	"github.com/Anees44/trae-dating-project/internal/service"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger  *slog.Logger
	Timeout time.Duration
	Cookie  middleware.CookieOptions
	Guard   middleware.Resolver
}

// NewRouter собирает http.Handler портала.
func NewRouter(svc *service.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	// внешний -> внутренний
	root.Use(
		middleware.Recover(),
		middleware.RequestID(), // до логирования
		middleware.Logging(opts.Logger),
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout))
	}
	root.Use(middleware.SessionCookie(opts.Cookie))

	h := handlers.New(svc, opts.Cookie)

	registerRoutes(root, h, opts.Guard)

	return root
}

// registerRoutes — единая точка регистрации маршрутов.
func registerRoutes(r chi.Router, h *handlers.Handlers, guard middleware.Resolver) {
	// public
	r.Get("/", h.Home)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)

	// admin: вход по отдельной учётке, сессия пользователя не нужна.
	r.Post("/admin/login", h.AdminLogin)
	r.Get("/admin/dashboard", h.AdminDashboard)
	r.Put("/admin/users/{id}/toggle-status", h.AdminToggleUser)
	r.Delete("/admin/users/{id}", h.AdminDeleteUser)

	// user dashboard
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RequireSession(guard))

		r.Get("/profile", h.GetProfile)
		r.Post("/profile", h.SaveProfile)

		r.Get("/matches", h.Matches)

		r.Get("/conversations", h.Conversations)
		r.Get("/conversations/{id}", h.Conversation)
		r.Post("/conversations/{id}/messages", h.SendMessage)

		r.Get("/settings", h.GetSettings)
		r.Put("/settings", h.UpdateSettings)
		r.Put("/settings/password", h.ChangePassword)
		r.Put("/settings/email", h.ChangeEmail)
		r.Delete("/settings/account", h.DeleteAccount)
	})
}
