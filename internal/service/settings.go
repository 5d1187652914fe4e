package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Anees44/trae-dating-project/internal/backend"
	"github.com/Anees44/trae-dating-project/internal/models"
	"github.com/Anees44/trae-dating-project/internal/session"
	"github.com/go-playground/validator/v10"
)

const updatedMessage = "Updated successfully!"

// Settings — контроллер страницы настроек на один запрос.
type Settings struct {
	svc      *Service
	sess     *session.Session
	account  models.Account
	validate *validator.Validate
}

func (s *Service) Settings(sess *session.Session) *Settings {
	return &Settings{
		svc:      s,
		sess:     sess,
		validate: validator.New(),
	}
}

func (st *Settings) view() *models.View {
	return &models.View{Data: st.account}
}

func (st *Settings) fail(ctx context.Context, op, fallback string, err error) (*models.View, error) {
	msg := backend.Message(err, fallback)

	err = st.svc.backendErr(ctx, op, st.sess.ID, err)
	if errors.Is(err, ErrUnauthenticated) {
		return nil, err
	}

	v := st.view()
	v.Error = msg

	return v, err
}

// Load читает поля аккаунта. 404 — пустые поля, без ошибки.
func (st *Settings) Load(ctx context.Context) (*models.View, error) {
	const op = "service/settings/Load"

	acc, err := st.svc.backend.Account(ctx, st.sess.Token)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			st.account = models.Account{}
			return st.view(), nil
		}

		return st.fail(ctx, op, "Failed to load settings", err)
	}

	st.account = normalizeAccount(*acc)

	return st.view(), nil
}

// Update сохраняет поля аккаунта.
func (st *Settings) Update(ctx context.Context, acc models.Account) (*models.View, error) {
	const op = "service/settings/Update"

	acc = normalizeAccount(acc)
	st.account = acc

	if acc.DateOfBirth != "" && st.validate.Var(acc.DateOfBirth, "datetime=2006-01-02") != nil {
		v := st.view()
		v.Error = "Date of birth must be YYYY-MM-DD."
		return v, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if err := st.svc.backend.UpdateAccount(ctx, st.sess.Token, acc); err != nil {
		return st.fail(ctx, op, "Failed to update profile", err)
	}

	v := st.view()
	v.Notice = notice(models.NoticeSuccess, updatedMessage)

	return v, nil
}

// ChangePassword меняет пароль. Несовпадение подтверждения проверяется до запроса.
func (st *Settings) ChangePassword(ctx context.Context, oldPassword, newPassword, confirm string) (*models.View, error) {
	const op = "service/settings/ChangePassword"

	if newPassword == "" || oldPassword == "" {
		v := st.view()
		v.Error = "Current and new password are required."
		return v, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if newPassword != confirm {
		v := st.view()
		v.Error = "Passwords do not match!"
		return v, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	req := models.ChangePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}
	if err := st.svc.backend.ChangePassword(ctx, st.sess.Token, req); err != nil {
		return st.fail(ctx, op, "Failed to change password", err)
	}

	v := st.view()
	v.Notice = notice(models.NoticeSuccess, updatedMessage)

	return v, nil
}

// ChangeEmail меняет e-mail; в состояние попадает адрес из ответа бэкенда.
func (st *Settings) ChangeEmail(ctx context.Context, newEmail string) (*models.View, error) {
	const op = "service/settings/ChangeEmail"

	newEmail = strings.TrimSpace(newEmail)
	if st.validate.Var(newEmail, "required,email") != nil {
		v := st.view()
		v.Error = "Please enter a valid email."
		return v, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	res, err := st.svc.backend.ChangeEmail(ctx, st.sess.Token, models.ChangeEmailRequest{NewEmail: newEmail})
	if err != nil {
		return st.fail(ctx, op, "Failed to change email", err)
	}

	st.account.Email = res.Email
	if st.account.Email == "" {
		st.account.Email = newEmail
	}

	v := st.view()
	v.Notice = notice(models.NoticeSuccess, updatedMessage)

	return v, nil
}

// DeleteAccount удаляет аккаунт, завершает сессию и отправляет на /login.
func (st *Settings) DeleteAccount(ctx context.Context) (*models.View, error) {
	const op = "service/settings/DeleteAccount"

	if err := st.svc.backend.DeleteAccount(ctx, st.sess.Token); err != nil {
		return st.fail(ctx, op, "Failed to delete account", err)
	}

	if err := st.svc.sessions.End(ctx, st.sess.ID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.View{Redirect: models.RedirectTo("/login", 0)}, nil
}

// normalizeAccount обрезает время у даты рождения (RFC3339 -> YYYY-MM-DD).
func normalizeAccount(acc models.Account) models.Account {
	if i := strings.IndexByte(acc.DateOfBirth, 'T'); i >= 0 {
		acc.DateOfBirth = acc.DateOfBirth[:i]
	}
	acc.FullName = strings.TrimSpace(acc.FullName)
	acc.Email = strings.TrimSpace(acc.Email)
	acc.Phone = strings.TrimSpace(acc.Phone)

	return acc
}
