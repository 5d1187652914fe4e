package form

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strconv"
	"strings"

	"github.com/Anees44/trae-dating-project/internal/models"
)

// Multipart сериализует форму в multipart/form-data в порядке полей схемы.
// Каждое поле отправляется всегда (пустое — пустой строкой); List — JSON-массивом строк.
func (c *Controller) Multipart() (models.Multipart, error) {
	const op = "form/Multipart"

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range c.schema.Fields {
		val, err := c.encode(f)
		if err != nil {
			return models.Multipart{}, fmt.Errorf("%s: %w", op, err)
		}

		if err := w.WriteField(f.Name, val); err != nil {
			return models.Multipart{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	if c.image != nil && c.schema.Image != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			escapeQuotes(c.schema.Image.Field), escapeQuotes(filename(c.image.Filename))))
		h.Set("Content-Type", c.image.ContentType)

		part, err := w.CreatePart(h)
		if err != nil {
			return models.Multipart{}, fmt.Errorf("%s: %w", op, err)
		}

		if _, err := part.Write(c.image.Data); err != nil {
			return models.Multipart{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := w.Close(); err != nil {
		return models.Multipart{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.Multipart{ContentType: w.FormDataContentType(), Body: buf.Bytes()}, nil
}

func (c *Controller) encode(f Field) (string, error) {
	v, ok := c.values[f.Name]
	if !ok {
		if f.Kind == List {
			return "[]", nil
		}
		return "", nil
	}

	switch x := v.(type) {
	case string:
		return x, nil
	case int:
		return strconv.Itoa(x), nil
	case bool:
		return strconv.FormatBool(x), nil
	case []string:
		b, err := json.Marshal(x)
		return string(b), err
	}

	return "", fmt.Errorf("field %q: unsupported value %T", f.Name, v)
}

func filename(name string) string {
	if name == "" {
		return "image"
	}

	return name
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string { return quoteEscaper.Replace(s) }
