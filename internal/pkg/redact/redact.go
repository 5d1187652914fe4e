// redact маскирует чувствительные значения перед записью в лог.
package redact

import "strings"

// Email оставляет две первые руны локальной части и домен.
func Email(s string) string {
	parts := strings.Split(s, "@")
	if len(parts) != 2 {
		return "***"
	}

	local, domain := []rune(parts[0]), parts[1]
	if len(local) > 2 {
		return string(local[:2]) + "***@" + domain
	}

	return "***@" + domain
}

// Token оставляет последние 4 символа длинного токена, чтобы сессии можно было различать в логах.
func Token(s string) string {
	if len(s) <= 16 {
		return "[REDACTED_TOKEN]"
	}

	return "[REDACTED_TOKEN]…" + s[len(s)-4:]
}
