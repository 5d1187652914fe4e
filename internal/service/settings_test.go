package service

import (
	"context"
	"testing"

	"github.com/Anees44/trae-dating-project/internal/models"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func TestSettings_Load(t *testing.T) {
	f := newFixture(t)
	sess := f.login(t, "u1")

	f.backend.EXPECT().Account(gomock.Any(), sess.Token).Return(&models.Account{
		FullName: "Aisha", Email: "a@example.com", DateOfBirth: "1998-04-12T00:00:00.000Z", Gender: "female",
	}, nil)

	v, err := f.svc.Settings(sess).Load(context.Background())
	require.NoError(t, err)

	acc := v.Data.(models.Account)
	require.Equal(t, "1998-04-12", acc.DateOfBirth)
	require.Equal(t, "a@example.com", acc.Email)
}

func TestSettings_Load_NotFoundIsEmpty(t *testing.T) {
	f := newFixture(t)
	sess := f.login(t, "u1")

	// пустая анкета не создаётся: только один GET.
	f.backend.EXPECT().Account(gomock.Any(), gomock.Any()).Return(nil, status(404, ""))

	v, err := f.svc.Settings(sess).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, models.Account{}, v.Data)
}

func TestSettings_Update(t *testing.T) {
	f := newFixture(t)
	sess := f.login(t, "u1")

	f.backend.EXPECT().UpdateAccount(gomock.Any(), sess.Token, models.Account{FullName: "Aisha", DateOfBirth: "1998-04-12"}).Return(nil)

	v, err := f.svc.Settings(sess).Update(context.Background(), models.Account{FullName: " Aisha ", DateOfBirth: "1998-04-12"})
	require.NoError(t, err)
	require.Equal(t, "Updated successfully!", v.Notice.Text)

	v, err = f.svc.Settings(sess).Update(context.Background(), models.Account{DateOfBirth: "12/04/1998"})
	require.ErrorIs(t, err, ErrInvalidArgument)
	require.Equal(t, "Date of birth must be YYYY-MM-DD.", v.Error)
}

func TestSettings_Update_ServerMessage(t *testing.T) {
	f := newFixture(t)
	sess := f.login(t, "u1")

	f.backend.EXPECT().UpdateAccount(gomock.Any(), gomock.Any(), gomock.Any()).Return(status(400, "Phone is invalid"))

	v, err := f.svc.Settings(sess).Update(context.Background(), models.Account{Phone: "x"})
	require.ErrorIs(t, err, ErrUpstream)
	require.Equal(t, "Phone is invalid", v.Error)
}

func TestSettings_ChangePassword(t *testing.T) {
	f := newFixture(t)
	sess := f.login(t, "u1")
	st := f.svc.Settings(sess)

	v, err := st.ChangePassword(context.Background(), "old", "new1", "new2")
	require.ErrorIs(t, err, ErrInvalidArgument)
	require.Equal(t, "Passwords do not match!", v.Error)

	_, err = st.ChangePassword(context.Background(), "", "new", "new")
	require.ErrorIs(t, err, ErrInvalidArgument)

	f.backend.EXPECT().ChangePassword(gomock.Any(), sess.Token, models.ChangePasswordRequest{OldPassword: "old", NewPassword: "new"}).Return(status(400, "Old password is incorrect"))

	v, err = st.ChangePassword(context.Background(), "old", "new", "new")
	require.Error(t, err)
	require.Equal(t, "Old password is incorrect", v.Error)
}

func TestSettings_ChangeEmail(t *testing.T) {
	f := newFixture(t)
	sess := f.login(t, "u1")
	st := f.svc.Settings(sess)

	_, err := st.ChangeEmail(context.Background(), "not-an-email")
	require.ErrorIs(t, err, ErrInvalidArgument)

	f.backend.EXPECT().ChangeEmail(gomock.Any(), sess.Token, models.ChangeEmailRequest{NewEmail: "new@example.com"}).
		Return(&models.ChangeEmailResponse{Email: "new@example.com"}, nil)

	v, err := st.ChangeEmail(context.Background(), " new@example.com ")
	require.NoError(t, err)
	require.Equal(t, "new@example.com", v.Data.(models.Account).Email)
}

func TestSettings_DeleteAccount_EndsSession(t *testing.T) {
	f := newFixture(t)
	sess := f.login(t, "u1")

	f.backend.EXPECT().DeleteAccount(gomock.Any(), sess.Token).Return(nil)

	v, err := f.svc.Settings(sess).DeleteAccount(context.Background())
	require.NoError(t, err)
	require.Equal(t, "/login", v.Redirect.To)
	require.False(t, f.hasCredential(t, sess.ID))
}

func TestSettings_DeleteAccount_FailureKeepsSession(t *testing.T) {
	f := newFixture(t)
	sess := f.login(t, "u1")

	f.backend.EXPECT().DeleteAccount(gomock.Any(), gomock.Any()).Return(status(500, ""))

	v, err := f.svc.Settings(sess).DeleteAccount(context.Background())
	require.ErrorIs(t, err, ErrUpstream)
	require.Equal(t, "Failed to delete account", v.Error)
	require.True(t, f.hasCredential(t, sess.ID))
}
