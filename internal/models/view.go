package models

import "time"

// Типы уведомлений формы.
const (
	NoticeInfo    = "info"
	NoticeError   = "error"
	NoticeSuccess = "success"
)

// Notice — строка-уведомление над формой/списком.
type Notice struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// IsZero сообщает, что уведомления нет.
func (n Notice) IsZero() bool { return n.Text == "" }

// Redirect — отложенный переход на другую страницу.
type Redirect struct {
	To      string `json:"to"`
	AfterMs int64  `json:"afterMs"`
}

// RedirectTo — переход на to через after.
func RedirectTo(to string, after time.Duration) *Redirect {
	return &Redirect{To: to, AfterMs: after.Milliseconds()}
}

// View — состояние страницы {loading, error, data}, которое рисует фронт.
type View struct {
	Loading  bool      `json:"loading"`
	Error    string    `json:"error,omitempty"`
	Notice   *Notice   `json:"notice,omitempty"`
	Data     any       `json:"data,omitempty"`
	Redirect *Redirect `json:"redirect,omitempty"`
}
