// Package validator wraps go-playground/validator with the custom
// rules and the user-facing message rendering used across handlers.
package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// Letters (including accented), spaces, apostrophes and hyphens.
	personNameRe = regexp.MustCompile(`^[\p{L}\s'\-]+$`)
	// Digits, spaces, plus, hyphens and parentheses.
	phoneCharsRe = regexp.MustCompile(`^[\d\s()+\-]+$`)
)

// Validator validates structs and single values.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with the custom rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation("person_name", func(fl validator.FieldLevel) bool {
		return personNameRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("phone_chars", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		return phoneCharsRe.MatchString(value)
	})

	return &Validator{validate: v}
}

// Struct validates a struct based on its validate tags.
func (v *Validator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}

// Var validates a single variable against a tag expression.
func (v *Validator) Var(field interface{}, tag string) error {
	return v.validate.Var(field, tag)
}

// FieldViolation is the first failed rule of a validation run,
// scoped to a single field with a human-readable reason.
type FieldViolation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// FirstViolation converts a validator error into a field-scoped
// violation with Portuguese user-facing copy. Returns nil when err
// is nil or not a validation error.
func FirstViolation(err error) *FieldViolation {
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return &FieldViolation{Field: "", Reason: "dados inválidos"}
	}
	fe := errs[0]
	field := jsonFieldName(fe)
	return &FieldViolation{Field: field, Reason: reasonFor(fieldLabel(field), fe)}
}

// Portuguese labels for the public payload fields.
var fieldLabels = map[string]string{
	"name":    "nome",
	"email":   "email",
	"phone":   "telefone",
	"message": "mensagem",
}

func fieldLabel(field string) string {
	if label, ok := fieldLabels[field]; ok {
		return label
	}
	return field
}

func jsonFieldName(fe validator.FieldError) string {
	// Namespace is Struct.Field; the payload uses the lower-cased leaf.
	parts := strings.Split(fe.Namespace(), ".")
	return strings.ToLower(parts[len(parts)-1])
}

func reasonFor(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s é obrigatório", field)
	case "min":
		return fmt.Sprintf("%s deve ter pelo menos %s caracteres", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s deve ter no máximo %s caracteres", field, fe.Param())
	case "email":
		return "email inválido"
	case "person_name":
		return "nome contém caracteres inválidos"
	case "phone_chars":
		return "telefone contém caracteres inválidos"
	default:
		return fmt.Sprintf("%s é inválido", field)
	}
}
