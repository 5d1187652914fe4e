package models

// UserStatus — статус пользователя в админке.
type UserStatus string

const (
	StatusActive  UserStatus = "active"
	StatusBlocked UserStatus = "blocked"
)

// AdminUser — строка таблицы пользователей админ-панели.
type AdminUser struct {
	ID     string     `json:"_id"`
	Name   string     `json:"name"`
	Email  string     `json:"email"`
	Status UserStatus `json:"status"`
}

// DashboardStats — агрегаты для админ-панели.
type DashboardStats struct {
	TotalUsers   int `json:"totalUsers"`
	ActiveUsers  int `json:"activeUsers"`
	BlockedUsers int `json:"blockedUsers"`
}

// Dashboard — ответ GET /dashboard.
type Dashboard struct {
	Stats *DashboardStats `json:"stats"`
	Users []AdminUser     `json:"users"`
}
