package http

import (
	"biblios/internal/validation"

	"github.com/go-playground/validator/v10"
)

type FieldError = validation.FieldError

// Reusable error payload
type ErrorResponse struct {
	Error   string       `json:"error"`
	Kind    string       `json:"kind,omitempty"`
	Details []FieldError `json:"details,omitempty"`
}

// CustomValidator plugs the shared validator into echo's c.Validate.
type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator { return &CustomValidator{v: validation.Validator()} }

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// ToFieldErrors maps validator errors to readable, json-named messages.
func ToFieldErrors(err error) []FieldError { return validation.FieldErrors(err) }
