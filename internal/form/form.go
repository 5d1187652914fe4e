package form

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrUnknownField = errors.New("unknown form field")
	// ErrInvalid — изменение или отправка отклонены; состояние не изменилось.
	ErrInvalid = errors.New("invalid form value")
)

// FieldError — отклонённое значение поля. Field пуст для ошибок формы целиком.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Message }
func (e *FieldError) Unwrap() error { return ErrInvalid }

// Controller хранит значения одной формы. Не потокобезопасен: один экземпляр на запрос.
type Controller struct {
	schema   Schema
	index    map[string]int
	values   map[string]any
	errs     map[string]string
	notice   string
	image    *Image
	validate *validator.Validate
}

func New(schema Schema) *Controller {
	c := &Controller{
		schema:   schema,
		index:    make(map[string]int, len(schema.Fields)),
		values:   make(map[string]any, len(schema.Fields)),
		errs:     make(map[string]string),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}

	for i, f := range schema.Fields {
		c.index[f.Name] = i
		if f.Default != nil {
			c.values[f.Name] = f.Default
		}
	}

	return c
}

// Load заполняет форму уже сохранёнными значениями без проверки правил.
// Значения неподходящего типа пропускаются. Выключенный флажок сбрасывает
// свои зависимые поля так же, как при Set.
func (c *Controller) Load(values map[string]any) {
	for name, v := range values {
		i, ok := c.index[name]
		if !ok {
			continue
		}

		kind := c.schema.Fields[i].Kind
		if typed, ok := coerce(kind, v); ok {
			// бэкенд отдаёт 0 для незаполненных чисел.
			if isEmpty(typed) || (kind == Number && typed == 0) {
				delete(c.values, name)
				continue
			}
			c.values[name] = typed
		}
	}

	for _, f := range c.schema.Fields {
		if on, ok := c.values[f.Name].(bool); ok && !on {
			c.clearDependents(f)
		}
	}
}

// Set применяет изменение поля из пользовательского ввода.
// Пустое значение сбрасывает поле. Невалидное значение отклоняется: состояние
// не меняется, ошибка доступна через Errors и Notice.
func (c *Controller) Set(name, raw string) error {
	i, ok := c.index[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	f := c.schema.Fields[i]

	v, err := parse(f, raw)
	if err != nil {
		return c.reject(f.Name, f.Label+" must be a number.")
	}

	if !isEmpty(v) {
		if msg := c.check(f, v); msg != "" {
			return c.reject(f.Name, msg)
		}
	}

	if isEmpty(v) && f.Kind != Bool {
		delete(c.values, f.Name)
	} else {
		c.values[f.Name] = v
	}

	if b, ok := v.(bool); ok && !b {
		c.clearDependents(f)
	}

	delete(c.errs, f.Name)
	c.notice = ""

	return nil
}

func (c *Controller) clearDependents(f Field) {
	for _, dep := range f.Clears {
		delete(c.values, dep)
		delete(c.errs, dep)
	}
}

// Validate — проверка перед отправкой: обязательные поля, затем правила каждого поля.
func (c *Controller) Validate() error {
	for _, f := range c.schema.Fields {
		if f.Required && isEmpty(c.values[f.Name]) {
			return c.reject("", c.schema.RequiredMessage())
		}
	}

	for _, f := range c.schema.Fields {
		v, ok := c.values[f.Name]
		if !ok || isEmpty(v) {
			continue
		}

		if msg := c.check(f, v); msg != "" {
			return c.reject(f.Name, msg)
		}
	}

	return nil
}

func (c *Controller) check(f Field, v any) string {
	if f.Kind == Choice && len(f.Choices) > 0 && !slices.Contains(f.Choices, v.(string)) {
		return f.message()
	}

	if f.Rules == "" {
		return ""
	}

	if f.Kind == List {
		for _, item := range v.([]string) {
			if c.validate.Var(item, f.Rules) != nil {
				return f.message()
			}
		}
		return ""
	}

	if c.validate.Var(v, f.Rules) != nil {
		return f.message()
	}

	return ""
}

func (c *Controller) reject(field, msg string) error {
	if field != "" {
		c.errs[field] = msg
	}
	c.notice = msg

	return &FieldError{Field: field, Message: msg}
}

// Notice — последнее сообщение об отклонённом изменении (пусто, если его нет).
func (c *Controller) Notice() string { return c.notice }

// Errors — ошибки по полям.
func (c *Controller) Errors() map[string]string {
	out := make(map[string]string, len(c.errs))
	for k, v := range c.errs {
		out[k] = v
	}

	return out
}

// Values — копия всех заданных значений.
func (c *Controller) Values() map[string]any {
	out := make(map[string]any, len(c.values))
	for k, v := range c.values {
		if l, ok := v.([]string); ok {
			v = slices.Clone(l)
		}
		out[k] = v
	}

	return out
}

// Value возвращает типизированное значение поля.
func (c *Controller) Value(name string) (any, bool) {
	v, ok := c.values[name]
	return v, ok
}

func (c *Controller) String(name string) string {
	s, _ := c.values[name].(string)
	return s
}

func (c *Controller) Int(name string) (int, bool) {
	n, ok := c.values[name].(int)
	return n, ok
}

func (c *Controller) Bool(name string) bool {
	b, _ := c.values[name].(bool)
	return b
}

func (c *Controller) List(name string) []string {
	l, _ := c.values[name].([]string)
	return l
}

func parse(f Field, raw string) (any, error) {
	raw = strings.TrimSpace(raw)

	switch f.Kind {
	case Number:
		if raw == "" {
			return nil, nil
		}
		return strconv.Atoi(raw)
	case Bool:
		switch strings.ToLower(raw) {
		case "true", "on", "1", "yes":
			return true, nil
		case "", "false", "off", "0", "no":
			return false, nil
		}
		return nil, fmt.Errorf("not a bool: %q", raw)
	case List:
		return splitList(raw), nil
	}

	return raw, nil
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}

func coerce(k Kind, v any) (any, bool) {
	switch k {
	case Number:
		switch n := v.(type) {
		case int:
			return n, true
		case int64:
			return int(n), true
		case float64:
			return int(n), true
		}
	case Bool:
		b, ok := v.(bool)
		return b, ok
	case List:
		switch l := v.(type) {
		case []string:
			return slices.Clone(l), true
		case string:
			return splitList(l), true
		}
	default:
		s, ok := v.(string)
		return s, ok
	}

	return nil, false
}

func isEmpty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case []string:
		return len(x) == 0
	}

	return false
}
