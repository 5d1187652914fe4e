// form — контроллер состояния формы, описанной декларативной схемой.
//
// Значения проверяются при каждом изменении (Set) и целиком при отправке (Validate).
// Правила полей — теги go-playground/validator, применяемые к типизированному значению.
package form

import "strings"

// Kind — тип значения поля.
type Kind int

const (
	Text   Kind = iota // string
	Number             // int; пустое значение — поле не задано
	Bool               // bool
	Choice             // string из Choices
	List               // []string; ввод через запятую
)

// Field описывает одно поле формы.
type Field struct {
	Name  string
	Label string
	Kind  Kind

	Required bool
	// Rules — теги validator для непустого значения (например "gte=18").
	Rules string
	// Message — текст ошибки при нарушении Rules; по умолчанию "<Label> is invalid.".
	Message string
	Choices []string
	// Clears — поля, которые сбрасываются, когда bool-поле становится false.
	Clears  []string
	Default any
}

// ImageRule — ограничения на прикрепляемую картинку.
type ImageRule struct {
	Field       string // имя multipart-части
	MaxBytes    int64
	TypeMessage string
	SizeMessage string
}

type Schema struct {
	Fields []Field
	Image  *ImageRule
}

// RequiredMessage — "A, B, and C are required." по всем обязательным полям схемы.
func (s Schema) RequiredMessage() string {
	var labels []string
	for _, f := range s.Fields {
		if f.Required {
			labels = append(labels, f.Label)
		}
	}

	switch len(labels) {
	case 0:
		return ""
	case 1:
		return labels[0] + " is required."
	case 2:
		return labels[0] + " and " + labels[1] + " are required."
	}

	return strings.Join(labels[:len(labels)-1], ", ") + ", and " + labels[len(labels)-1] + " are required."
}

func (f Field) message() string {
	if f.Message != "" {
		return f.Message
	}

	return f.Label + " is invalid."
}
