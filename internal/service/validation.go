package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/Shivanand-hulikatti/eventos/internal/model"
	"github.com/Shivanand-hulikatti/eventos/internal/sanitize"
	"github.com/go-playground/validator/v10"
)

// newValidator returns a validator that reports JSON field names and knows
// the "category" tag.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return isCategory(fl.Field().String())
	})

	return v
}

func isCategory(value string) bool {
	for _, c := range model.Categories() {
		if string(c) == value {
			return true
		}
	}
	return false
}

// validateStruct runs v over s and converts failures into a ValidationError
// of the given kind.
func validateStruct(v *validator.Validate, s any, kind error) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		fields[fe.Field()] = fieldMessage(fe)
	}
	return &ValidationError{Kind: kind, Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Este campo es obligatorio."
	case "max":
		return fmt.Sprintf("Debe tener como máximo %s caracteres.", fe.Param())
	case "min":
		return fmt.Sprintf("Debe ser al menos %s.", fe.Param())
	case "email":
		return "Correo electrónico inválido."
	case "category":
		return "Categoría inválida."
	default:
		return "Valor inválido."
	}
}

// plainText trims each field in place and returns a message for every field
// that carries HTML markup. Values are never rewritten beyond the trim.
func plainText(fields map[string]*string) map[string]string {
	errs := make(map[string]string)
	for name, v := range fields {
		text, ok := sanitize.PlainText(*v)
		*v = text
		if !ok {
			errs[name] = MsgMarkupNotAllowed
		}
	}
	return errs
}

// withFieldErrors adds extra field messages to err, which is nil or the
// result of validateStruct. A field already reported by the validator keeps
// its message.
func withFieldErrors(err error, kind error, extra map[string]string) error {
	if len(extra) == 0 {
		return err
	}

	verr := &ValidationError{Kind: kind, Fields: make(map[string]string, len(extra))}
	if err != nil && !errors.As(err, &verr) {
		return err
	}
	for field, msg := range extra {
		if _, seen := verr.Fields[field]; !seen {
			verr.Fields[field] = msg
		}
	}
	return verr
}
