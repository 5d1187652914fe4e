package models

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse — ответ бэкенда на вход: bearer-токен и (опционально) пользователь.
type LoginResponse struct {
	Token string   `json:"token"`
	User  *UserRef `json:"user,omitempty"`
}
