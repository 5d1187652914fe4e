package models

// Account — поля страницы настроек.
// DateOfBirth — YYYY-MM-DD (бэкенд присылает RFC3339, время отбрасывается).
type Account struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"dateOfBirth"`
	Gender      string `json:"gender"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type ChangeEmailRequest struct {
	NewEmail string `json:"newEmail"`
}

type ChangeEmailResponse struct {
	Email string `json:"email"`
}
