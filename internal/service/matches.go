package service

import (
	"context"
	"errors"

	"github.com/Anees44/trae-dating-project/internal/models"
	"github.com/Anees44/trae-dating-project/internal/session"
)

// Matches загружает мэтчи и оставляет в каждом только собеседника.
func (s *Service) Matches(ctx context.Context, sess *session.Session) (*models.View, error) {
	const op = "service/matches/Matches"

	matches, err := s.backend.Matches(ctx, sess.Token)
	if err != nil {
		err = s.backendErr(ctx, op, sess.ID, err)
		if errors.Is(err, ErrUnauthenticated) {
			return nil, err
		}

		return &models.View{Error: "Failed to load matches", Data: []models.MatchCard{}}, err
	}

	cards := make([]models.MatchCard, 0, len(matches))
	for _, m := range matches {
		peer, ok := m.Other(sess.UserID)
		if !ok {
			continue
		}

		cards = append(cards, models.MatchCard{MatchID: m.ID, User: peer})
	}

	view := &models.View{Data: cards}
	if len(cards) == 0 {
		view.Notice = notice(models.NoticeInfo, "No matches yet. Send interests to connect")
	}

	return view, nil
}
