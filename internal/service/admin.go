package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Anees44/trae-dating-project/internal/backend"
	"github.com/Anees44/trae-dating-project/internal/models"
	"github.com/Anees44/trae-dating-project/internal/pkg/log"
	"github.com/Anees44/trae-dating-project/internal/pkg/redact"
	"github.com/Anees44/trae-dating-project/internal/session"
	"golang.org/x/crypto/bcrypt"
)

const (
	invalidAdminMessage  = "Invalid Admin Email or Password"
	dashboardFailMessage = "Dashboard load failed"
)

// AdminPanel — контроллер админ-панели на один запрос.
//
// Вход проверяется порталом по сконфигурированным e-mail и bcrypt-хэшу;
// бэкенд вызывается с сервисным admin-токеном из конфигурации.
type AdminPanel struct {
	svc *Service
	sid string

	authenticated bool
	loaded        bool
	stats         models.DashboardStats
	users         []models.AdminUser
}

func (s *Service) AdminPanel(sid string) *AdminPanel {
	return &AdminPanel{svc: s, sid: sid}
}

func (p *AdminPanel) view() *models.View {
	users := p.users
	if users == nil {
		users = []models.AdminUser{}
	}

	stats := p.stats

	return &models.View{Data: models.Dashboard{Stats: &stats, Users: users}}
}

// Login проверяет учётку администратора. Успех — ровно одна загрузка дашборда;
// неудача — сообщение об ошибке без обращения к бэкенду.
func (p *AdminPanel) Login(ctx context.Context, email, password string) (*models.View, error) {
	const op = "service/admin/Login"

	cfg := p.svc.cfg.Admin
	lg := log.From(ctx).With("op", op, "email", redact.Email(email))

	if !cfg.Enabled() {
		lg.Warn("admin login disabled")
		return errorView(invalidAdminMessage), fmt.Errorf("%s: %w", op, ErrAdminDisabled)
	}

	emailOK := strings.EqualFold(strings.TrimSpace(email), cfg.Email)
	passErr := bcrypt.CompareHashAndPassword([]byte(cfg.PasswordHash), []byte(password))
	if !emailOK || passErr != nil {
		lg.Warn("admin login rejected")
		return errorView(invalidAdminMessage), fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if err := p.svc.admins.Grant(ctx, p.sid, cfg.Email); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	p.authenticated = true
	lg.Info("admin logged in")

	return p.refresh(ctx, op)
}

// Resume восстанавливает вход по маркеру в хранилище.
func (p *AdminPanel) Resume(ctx context.Context) error {
	const op = "service/admin/Resume"

	if _, err := p.svc.admins.Active(ctx, p.sid); err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return fmt.Errorf("%s: %w", op, ErrForbidden)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	p.authenticated = true

	return nil
}

// Dashboard загружает статистику и список пользователей.
func (p *AdminPanel) Dashboard(ctx context.Context) (*models.View, error) {
	const op = "service/admin/Dashboard"

	if !p.authenticated {
		return nil, fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	return p.refresh(ctx, op)
}

// Toggle переключает статус пользователя. Если бэкенд вернул обновлённого
// пользователя, а список уже загружен, он правится на месте; иначе перечитывается.
func (p *AdminPanel) Toggle(ctx context.Context, id string) (*models.View, error) {
	const op = "service/admin/Toggle"

	if !p.authenticated {
		return nil, fmt.Errorf("%s: %w", op, ErrForbidden)
	}
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	updated, err := p.svc.backend.ToggleUserStatus(ctx, p.svc.cfg.Backend.AdminToken, id)
	if err != nil {
		return p.fail(ctx, op, "Failed to update user status", err)
	}

	if updated != nil && p.loaded {
		if i := p.index(id); i >= 0 {
			p.count(p.users[i].Status, -1)
			p.users[i].Status = updated.Status
			p.count(updated.Status, +1)
			return p.view(), nil
		}
	}

	return p.refresh(ctx, op)
}

// Delete удаляет пользователя. Загруженный список правится на месте, иначе перечитывается.
func (p *AdminPanel) Delete(ctx context.Context, id string) (*models.View, error) {
	const op = "service/admin/Delete"

	if !p.authenticated {
		return nil, fmt.Errorf("%s: %w", op, ErrForbidden)
	}
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if err := p.svc.backend.DeleteUser(ctx, p.svc.cfg.Backend.AdminToken, id); err != nil {
		return p.fail(ctx, op, "Failed to delete user", err)
	}

	if p.loaded {
		if i := p.index(id); i >= 0 {
			p.count(p.users[i].Status, -1)
			p.stats.TotalUsers--
			p.users = slices.Delete(p.users, i, i+1)
			return p.view(), nil
		}
	}

	return p.refresh(ctx, op)
}

func (p *AdminPanel) refresh(ctx context.Context, op string) (*models.View, error) {
	d, err := p.svc.backend.Dashboard(ctx, p.svc.cfg.Backend.AdminToken)
	if err != nil {
		p.loaded = false
		return p.fail(ctx, op, dashboardFailMessage, err)
	}

	p.users = d.Users
	p.stats = models.DashboardStats{}
	if d.Stats != nil {
		p.stats = *d.Stats
	}
	p.loaded = true

	return p.view(), nil
}

// fail: 401/403 бэкенда означает неверный admin-токен портала; сессия администратора не трогается.
func (p *AdminPanel) fail(ctx context.Context, op, fallback string, err error) (*models.View, error) {
	msg := backend.Message(err, fallback)

	if errors.Is(err, backend.ErrUnauthorized) {
		log.From(ctx).Error("backend rejected admin token", "op", op)
		err = fmt.Errorf("%s: %w: %w", op, ErrUpstream, err)
	} else {
		err = p.svc.backendErr(ctx, op, "", err)
	}

	v := p.view()
	v.Error = msg

	return v, err
}

func (p *AdminPanel) index(id string) int {
	return slices.IndexFunc(p.users, func(u models.AdminUser) bool { return u.ID == id })
}

func (p *AdminPanel) count(status models.UserStatus, delta int) {
	switch status {
	case models.StatusActive:
		p.stats.ActiveUsers += delta
	case models.StatusBlocked:
		p.stats.BlockedUsers += delta
	}
}
