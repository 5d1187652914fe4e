package handlers

import (
	"errors"
	"io"
	"net/http"

	apierrors "github.com/Anees44/trae-dating-project/internal/errors"
	"github.com/Anees44/trae-dating-project/internal/form"
	"github.com/Anees44/trae-dating-project/internal/service"
)

// maxProfileBody — предел тела формы анкеты. До него фото проверяется формой,
// более крупное тело не дочитывается и отклоняется с тем же сообщением о размере.
const maxProfileBody = 2*service.MaxImageBytes + 1<<20

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	v, err := h.Service.ProfileEditor(sess).Load(r.Context())
	respond(w, r, v, err)
}

// SaveProfile принимает multipart-форму анкеты (поля + необязательное фото "image").
// Поля применяются через контроллер формы: первый отклонённый ввод возвращается
// без обращения к бэкенду.
func (h *Handlers) SaveProfile(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	ed := h.Service.ProfileEditor(sess)
	f := ed.Form()

	// тело больше предела дочитывать не нужно: отказ тем же сообщением, что и для фото > 5MB.
	if r.ContentLength > maxProfileBody {
		v, rerr := ed.Rejected(f.RejectOversizeImage())
		respond(w, r, v, rerr)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxProfileBody)
	if err := r.ParseMultipartForm(maxProfileBody); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			v, rerr := ed.Rejected(f.RejectOversizeImage())
			respond(w, r, v, rerr)
			return
		}

		invalidArgument(w, r)
		return
	}

	if err := applyFields(f, service.ProfileSchema(), r); err != nil {
		if errors.Is(err, form.ErrUnknownField) {
			apierrors.WriteError(w, r, service.ErrInvalidArgument)
			return
		}

		v, rerr := ed.Rejected(err)
		respond(w, r, v, rerr)
		return
	}

	img, err := readImage(r, service.ProfileSchema().Image.Field)
	if err != nil {
		invalidArgument(w, r)
		return
	}
	if img != nil {
		if err := f.SetImage(*img); err != nil {
			v, rerr := ed.Rejected(err)
			respond(w, r, v, rerr)
			return
		}
	}

	v, err := ed.Save(r.Context())
	respond(w, r, v, err)
}

// applyFields переносит присланные поля в форму. Флажки применяются последними,
// чтобы сброс зависимых полей (isMuslim=false -> sect) не перетирался.
func applyFields(f *form.Controller, schema form.Schema, r *http.Request) error {
	values := r.MultipartForm.Value

	for _, bools := range []bool{false, true} {
		for _, field := range schema.Fields {
			if (field.Kind == form.Bool) != bools {
				continue
			}

			vs, ok := values[field.Name]
			if !ok || len(vs) == 0 {
				continue
			}

			if err := f.Set(field.Name, vs[0]); err != nil {
				return err
			}
		}
	}

	return nil
}

func readImage(r *http.Request, field string) (*form.Image, error) {
	files := r.MultipartForm.File[field]
	if len(files) == 0 {
		return nil, nil
	}

	fh := files[0]
	file, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	// лишнего байта достаточно, чтобы форма отклонила файл по размеру.
	data, err := io.ReadAll(io.LimitReader(file, service.MaxImageBytes+1))
	if err != nil {
		return nil, err
	}

	return &form.Image{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
