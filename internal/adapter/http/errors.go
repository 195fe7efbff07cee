package http

import (
	"errors"
	"net/http"

	"biblios/internal/domain/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

func statusFor(k errs.Kind) int {
	switch k {
	case errs.KindValidation, errs.KindInvalidMember:
		return http.StatusUnprocessableEntity
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindConflict, errs.KindUnavailable, errs.KindInvalidState:
		return http.StatusConflict
	case errs.KindStorage:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// writeError renders a usecase error. Storage details stay in the logs.
func writeError(c echo.Context, err error) error {
	var e *errs.Error
	if !errors.As(err, &e) {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
	resp := ErrorResponse{Error: e.Msg, Kind: e.Kind.String()}
	switch e.Kind {
	case errs.KindStorage:
		resp.Error = "storage unavailable"
	case errs.KindValidation:
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			resp.Details = ToFieldErrors(ve)
		}
	}
	return c.JSON(statusFor(e.Kind), resp)
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func validationFailed(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation failed",
		Kind:    errs.KindValidation.String(),
		Details: ToFieldErrors(err),
	})
}
