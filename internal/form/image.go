package form

import (
	"net/http"
	"strings"
)

// Image — прикреплённый файл картинки.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ImageInfo — описание прикреплённой картинки без содержимого.
type ImageInfo struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int    `json:"size"`
}

// SetImage прикрепляет картинку. Тип должен быть image/* (заявленный или определённый
// по содержимому), размер не больше MaxBytes. Отклонённый файл не меняет состояние.
func (c *Controller) SetImage(img Image) error {
	rule := c.schema.Image
	if rule == nil {
		return ErrUnknownField
	}

	ct := img.ContentType
	if ct == "" || ct == "application/octet-stream" {
		ct = http.DetectContentType(img.Data)
	}

	if !strings.HasPrefix(ct, "image/") {
		return c.reject(rule.Field, rule.TypeMessage)
	}

	if rule.MaxBytes > 0 && int64(len(img.Data)) > rule.MaxBytes {
		return c.reject(rule.Field, rule.SizeMessage)
	}

	img.ContentType = ct
	c.image = &img
	delete(c.errs, rule.Field)
	c.notice = ""

	return nil
}

// RejectOversizeImage отклоняет картинку, которую не стали дочитывать из-за размера.
// Уже прикреплённая картинка не меняется.
func (c *Controller) RejectOversizeImage() error {
	rule := c.schema.Image
	if rule == nil {
		return ErrUnknownField
	}

	return c.reject(rule.Field, rule.SizeMessage)
}

// Image возвращает описание прикреплённой картинки или nil.
func (c *Controller) Image() *ImageInfo {
	if c.image == nil {
		return nil
	}

	return &ImageInfo{Filename: c.image.Filename, ContentType: c.image.ContentType, Size: len(c.image.Data)}
}
