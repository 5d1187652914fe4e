package service

import (
	"context"
	"testing"

	"github.com/Anees44/trae-dating-project/internal/models"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func TestMatches_SymmetricPeer(t *testing.T) {
	f := newFixture(t)
	a := f.login(t, "A")
	b := f.login(t, "B")

	pair := []models.Match{{ID: "m1", Users: []models.UserRef{{ID: "A", Name: "Ali"}, {ID: "B", Name: "Bushra"}}}}
	f.backend.EXPECT().Matches(gomock.Any(), gomock.Any()).Return(pair, nil).Times(2)

	va, err := f.svc.Matches(context.Background(), a)
	require.NoError(t, err)
	vb, err := f.svc.Matches(context.Background(), b)
	require.NoError(t, err)

	require.Equal(t, "B", va.Data.([]models.MatchCard)[0].User.ID)
	require.Equal(t, "A", vb.Data.([]models.MatchCard)[0].User.ID)
	require.Equal(t, "m1", va.Data.([]models.MatchCard)[0].MatchID)
}

func TestMatches_EmptyAndBroken(t *testing.T) {
	f := newFixture(t)
	a := f.login(t, "A")

	broken := []models.Match{{ID: "m1", Users: []models.UserRef{{ID: "A"}}}}
	f.backend.EXPECT().Matches(gomock.Any(), a.Token).Return(broken, nil)

	v, err := f.svc.Matches(context.Background(), a)
	require.NoError(t, err)
	require.Empty(t, v.Data.([]models.MatchCard))
	require.Equal(t, "No matches yet. Send interests to connect", v.Notice.Text)
}

func TestMatches_Failure(t *testing.T) {
	f := newFixture(t)
	a := f.login(t, "A")

	f.backend.EXPECT().Matches(gomock.Any(), gomock.Any()).Return(nil, status(500, "x"))

	v, err := f.svc.Matches(context.Background(), a)
	require.ErrorIs(t, err, ErrUpstream)
	require.Equal(t, "Failed to load matches", v.Error)
	require.True(t, f.hasCredential(t, a.ID))
}

func TestMatches_UnauthorizedEndsSession(t *testing.T) {
	f := newFixture(t)
	a := f.login(t, "A")

	f.backend.EXPECT().Matches(gomock.Any(), gomock.Any()).Return(nil, status(403, "forbidden"))

	v, err := f.svc.Matches(context.Background(), a)
	require.Nil(t, v)
	require.ErrorIs(t, err, ErrUnauthenticated)
	require.False(t, f.hasCredential(t, a.ID))
}
