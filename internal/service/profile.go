package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Anees44/trae-dating-project/internal/backend"
	"github.com/Anees44/trae-dating-project/internal/form"
	"github.com/Anees44/trae-dating-project/internal/models"
	"github.com/Anees44/trae-dating-project/internal/pkg/log"
	"github.com/Anees44/trae-dating-project/internal/session"
)

// MaxImageBytes — предел размера фото анкеты.
const MaxImageBytes = 5 << 20

// SaveRedirectDelay — пауза перед переходом на /dashboard после сохранения анкеты.
const SaveRedirectDelay = 2 * time.Second

// Sects — допустимые значения поля sect.
var Sects = []string{"Sunni", "Shia", "Ahle Hadith", "Deobandi", "Barelvi", "Prefer Not to Say"}

// ProfileSchema — поля анкеты.
func ProfileSchema() form.Schema {
	return form.Schema{
		Fields: []form.Field{
			{Name: "fullName", Label: "Full Name", Kind: form.Text, Required: true, Rules: "max=100"},
			{Name: "gender", Label: "Gender", Kind: form.Choice, Required: true, Choices: []string{"male", "female", "other"}},
			{Name: "age", Label: "Age", Kind: form.Number, Required: true, Rules: "gte=18", Message: "Age must be 18 or above."},
			{Name: "isMuslim", Label: "I am Muslim", Kind: form.Bool, Default: true, Clears: []string{"sect"}},
			{Name: "sect", Label: "Sect", Kind: form.Choice, Choices: Sects},
			{Name: "city", Label: "City", Kind: form.Text, Rules: "max=100"},
			{Name: "education", Label: "Education", Kind: form.Text, Rules: "max=200"},
			{Name: "interests", Label: "Interests", Kind: form.List, Rules: "max=50"},
			{Name: "about", Label: "About Me", Kind: form.Text, Rules: "max=2000"},
			{Name: "height", Label: "Height", Kind: form.Number, Rules: "gte=50,lte=272", Message: "Height must be between 50 and 272 cm."},
			{Name: "profession", Label: "Profession", Kind: form.Text, Rules: "max=100"},
		},
		Image: &form.ImageRule{
			Field:       "image",
			MaxBytes:    MaxImageBytes,
			TypeMessage: "Please upload an image file.",
			SizeMessage: "Image size should be less than 5MB.",
		},
	}
}

// ProfileForm — данные страницы анкеты.
type ProfileForm struct {
	Values   map[string]any    `json:"values"`
	Errors   map[string]string `json:"errors,omitempty"`
	Image    *form.ImageInfo   `json:"image,omitempty"`
	ImageURL string            `json:"imageUrl,omitempty"`
}

// ProfileEditor — контроллер страницы анкеты на один запрос.
type ProfileEditor struct {
	svc       *Service
	sess      *session.Session
	form      *form.Controller
	profileID string
	imageURL  string
}

func (s *Service) ProfileEditor(sess *session.Session) *ProfileEditor {
	return &ProfileEditor{
		svc:  s,
		sess: sess,
		form: form.New(ProfileSchema()),
	}
}

// Form — контроллер формы для применения пользовательского ввода.
func (e *ProfileEditor) Form() *form.Controller { return e.form }

func (e *ProfileEditor) state() ProfileForm {
	return ProfileForm{
		Values:   e.form.Values(),
		Errors:   e.form.Errors(),
		Image:    e.form.Image(),
		ImageURL: e.imageURL,
	}
}

// Rejected — представление формы с отклонённым вводом (без обращения к бэкенду).
func (e *ProfileEditor) Rejected(err error) (*models.View, error) {
	return &models.View{Error: e.form.Notice(), Data: e.state()}, fmt.Errorf("service/profile/Rejected: %w: %w", ErrInvalidArgument, err)
}

// Load загружает анкету. 404 — пустая форма с подсказкой, без ошибки.
func (e *ProfileEditor) Load(ctx context.Context) (*models.View, error) {
	const op = "service/profile/Load"

	p, err := e.svc.backend.MyProfile(ctx, e.sess.Token)
	if err != nil {
		err = e.svc.backendErr(ctx, op, e.sess.ID, err)

		switch {
		case errors.Is(err, ErrNotFound):
			return &models.View{
				Notice: notice(models.NoticeInfo, "No profile found. You can create one."),
				Data:   e.state(),
			}, nil
		case errors.Is(err, ErrUnavailable):
			return &models.View{Error: "Failed to load profile data.", Data: e.state()}, err
		default:
			return &models.View{Error: "Failed to load profile.", Data: e.state()}, err
		}
	}

	e.apply(p)

	return &models.View{Data: e.state()}, nil
}

// Save проверяет форму и сохраняет анкету: PUT /profiles/{id}, если анкета уже есть, иначе POST.
// Невалидная форма отклоняется без сетевых вызовов.
func (e *ProfileEditor) Save(ctx context.Context) (*models.View, error) {
	const op = "service/profile/Save"

	lg := log.From(ctx).With("op", op, "user_id", e.sess.UserID)

	if err := e.form.Validate(); err != nil {
		return &models.View{Error: err.Error(), Data: e.state()}, fmt.Errorf("%s: %w: %w", op, ErrInvalidArgument, err)
	}

	body, err := e.form.Multipart()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	existing, err := e.svc.backend.MyProfile(ctx, e.sess.Token)
	switch {
	case err == nil:
		e.profileID = existing.ID
	case errors.Is(err, backend.ErrNotFound):
		e.profileID = ""
	default:
		return e.saveFailed(ctx, op, err)
	}

	var saved *models.Profile
	if e.profileID != "" {
		saved, err = e.svc.backend.UpdateProfile(ctx, e.sess.Token, e.profileID, body)
	} else {
		saved, err = e.svc.backend.CreateProfile(ctx, e.sess.Token, body)
	}
	if err != nil {
		return e.saveFailed(ctx, op, err)
	}

	if saved != nil && saved.ID != "" {
		e.profileID = saved.ID
		e.imageURL = saved.Image
	}

	lg.Info("profile saved", "profile_id", e.profileID)

	return &models.View{
		Notice:   notice(models.NoticeSuccess, "Profile saved successfully!"),
		Data:     e.state(),
		Redirect: models.RedirectTo("/dashboard", SaveRedirectDelay),
	}, nil
}

func (e *ProfileEditor) saveFailed(ctx context.Context, op string, err error) (*models.View, error) {
	msg := backend.Message(err, "Failed to save profile.")

	err = e.svc.backendErr(ctx, op, e.sess.ID, err)
	if errors.Is(err, ErrUnavailable) {
		msg = "An unexpected error occurred. Please try again."
	}

	return &models.View{Error: msg, Data: e.state()}, err
}

func (e *ProfileEditor) apply(p *models.Profile) {
	e.profileID = p.ID
	e.imageURL = p.Image

	e.form.Load(map[string]any{
		"fullName":   p.FullName,
		"gender":     p.Gender,
		"age":        p.Age,
		"isMuslim":   p.Muslim(),
		"sect":       p.Sect,
		"city":       p.City,
		"education":  p.Education,
		"interests":  p.Interests,
		"about":      p.About,
		"height":     p.Height,
		"profession": p.Profession,
	})
}
