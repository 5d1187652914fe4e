// models содержит сущности портала: ресурсы REST-бэкенда (профиль, мэтчи, переписка,
// пользователи админки) и состояние представлений, которое портал отдаёт фронту.
// JSON-теги повторяют контракт бэкенда (camelCase, идентификаторы в "_id").
package models

// Profile — анкета пользователя.
// Sect имеет смысл только при IsMuslim=true.
type Profile struct {
	ID         string   `json:"_id,omitempty"`
	FullName   string   `json:"fullName"`
	Gender     string   `json:"gender"`
	Age        int      `json:"age"`
	IsMuslim   *bool    `json:"isMuslim,omitempty"` // отсутствие на бэкенде трактуется как true
	Sect       string   `json:"sect,omitempty"`
	City       string   `json:"city,omitempty"`
	Education  string   `json:"education,omitempty"`
	Interests  []string `json:"interests,omitempty"`
	About      string   `json:"about,omitempty"`
	Height     int      `json:"height,omitempty"` // см
	Profession string   `json:"profession,omitempty"`
	Image      string   `json:"image,omitempty"` // URL
}

// Muslim возвращает IsMuslim с умолчанием true.
func (p *Profile) Muslim() bool {
	if p == nil || p.IsMuslim == nil {
		return true
	}

	return *p.IsMuslim
}

// Multipart — готовое multipart/form-data тело запроса.
type Multipart struct {
	ContentType string
	Body        []byte
}
