package models

// UserRef — краткая карточка пользователя внутри мэтча/диалога.
type UserRef struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Age        int    `json:"age,omitempty"`
	Profession string `json:"profession,omitempty"`
	Image      string `json:"image,omitempty"`
}

// Match — симметричная пара из двух пользователей.
type Match struct {
	ID    string    `json:"_id"`
	Users []UserRef `json:"users"`
}

// Other возвращает участника пары, отличного от userID.
// false — если такого участника нет (битая пара или оба участника совпадают с userID).
func (m Match) Other(userID string) (UserRef, bool) {
	for _, u := range m.Users {
		if u.ID != userID {
			return u, true
		}
	}

	return UserRef{}, false
}

// MatchCard — мэтч в том виде, в котором его показывает страница: только собеседник.
type MatchCard struct {
	MatchID string  `json:"matchId"`
	User    UserRef `json:"user"`
}
