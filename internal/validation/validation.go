// Package validation holds the struct validator shared by the HTTP adapter and
// the ledger inputs.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"biblios/internal/domain/errs"
	"biblios/pkg/id"
	"biblios/pkg/isbn"

	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator returns the process-wide validator with the custom rules registered.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// report json names, not Go field names
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		// ids = 32-char lowercase hex
		_ = v.RegisterValidation("hex32", func(fl validator.FieldLevel) bool {
			return id.Valid(fl.Field().String())
		})
		_ = v.RegisterValidation("isbn", func(fl validator.FieldLevel) bool {
			return isbn.Valid(fl.Field().String())
		})
		// not blank after trimming
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		validate = v
	})
	return validate
}

// Struct validates v and returns a validation error for op wrapping the
// validator's field errors, or nil.
func Struct(op string, v any) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}
	return &errs.Error{Kind: errs.KindValidation, Op: op, Msg: "invalid input", Err: err}
}

// FieldErrors maps validator errors anywhere in err's chain to readable
// messages. Other errors yield a single "_" entry.
func FieldErrors(err error) []FieldError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		out = append(out, FieldError{Field: e.Field(), Message: message(e)})
	}
	return out
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "notblank":
		return "is required"
	case "hex32":
		return "must be 32-char lowercase hex"
	case "isbn":
		return "must be a valid ISBN-10 or ISBN-13"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + e.Param()
	case "gte", "min":
		return "must be greater than or equal to " + e.Param()
	case "lte", "max":
		return "must be less than or equal to " + e.Param()
	}
	return e.Tag() + " validation failed"
}
