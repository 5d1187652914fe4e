// errors стандартизирует ответы об ошибках HTTP-слоя портала.
// На вход он принимает ошибку сервиса/сессии/контекста, а на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей.
//
// Источник истинности по маппингу: sentinel-ошибки internal/service и internal/session.
package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/Anees44/trae-dating-project/internal/form"
	"github.com/Anees44/trae-dating-project/internal/service"
	"github.com/Anees44/trae-dating-project/internal/session"
)

// Нестандартный код часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

// APIError — единый формат для фронта.
// Code — короткий стабильный код для машиночитаемой обработки на FE.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть.
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует ошибку в HTTP-статус и унифицированный ответ.
//
// err == nil — программная ошибка вызова: 500/internal, чтобы не послать
// "200 OK" с телом ошибки. Неизвестная ошибка — тоже 500/internal.
func ToHTTP(err error) (int, ErrorResponse) {
	status, code, msg := classify(err)

	return status, ErrorResponse{
		Error: APIError{
			Code:    code,
			Message: msg,
		},
	}
}

// Status — только HTTP-статус для err.
func Status(err error) int {
	status, _, _ := classify(err)
	return status
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// classify — таблица ошибка -> HTTP/FE-код/сообщение:
//   - InvalidArgument, form.ErrInvalid -> 400
//   - InvalidCredentials -> 401 (неверная пара логин/пароль)
//   - Unauthenticated, нет/битая сессия -> 401
//   - Forbidden, AdminDisabled -> 403
//   - NotFound -> 404
//   - Canceled -> 499 (клиент закрыл соединение)
//   - Upstream -> 502 (бэкенд ответил ошибкой)
//   - Unavailable -> 503
//   - DeadlineExceeded -> 504
//   - прочее -> 500/internal
func classify(err error) (int, string, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, "internal", "internal error"
	case stderrors.Is(err, service.ErrInvalidArgument), stderrors.Is(err, form.ErrInvalid):
		return http.StatusBadRequest, "invalid_argument", "invalid argument"
	case stderrors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials", "invalid credentials"
	case stderrors.Is(err, service.ErrUnauthenticated),
		stderrors.Is(err, session.ErrNoSession),
		stderrors.Is(err, session.ErrInvalidSession):
		return http.StatusUnauthorized, "unauthenticated", "unauthenticated"
	case stderrors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, "permission_denied", "permission denied"
	case stderrors.Is(err, service.ErrAdminDisabled):
		return http.StatusForbidden, "admin_disabled", "admin login disabled"
	case stderrors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not_found", "not found"
	case stderrors.Is(err, context.Canceled):
		return StatusClientClosedRequest, "canceled", "canceled"
	case stderrors.Is(err, service.ErrUpstream):
		return http.StatusBadGateway, "upstream", "upstream error"
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "deadline_exceeded", "deadline exceeded"
	case stderrors.Is(err, service.ErrUnavailable):
		return http.StatusServiceUnavailable, "unavailable", "service unavailable"
	default:
		return http.StatusInternalServerError, "internal", "internal error"
	}
}
