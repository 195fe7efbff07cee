package http

import (
	"net/http"

	"biblios/internal/usecase/ledger"
	"biblios/internal/usecase/library"

	"github.com/labstack/echo/v4"
)

type LibraryHandler struct {
	uc     *library.Usecase
	ledger *ledger.Usecase
}

func NewLibraryHandler(uc *library.Usecase, l *ledger.Usecase) *LibraryHandler {
	return &LibraryHandler{uc: uc, ledger: l}
}

func (h *LibraryHandler) List(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LibraryHandler) Create(c echo.Context) error {
	var req library.CreateInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	dto, err := h.uc.Create(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LibraryHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("library_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LibraryHandler) Current(c echo.Context) error {
	dto, err := h.uc.Current(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LibraryHandler) Update(c echo.Context) error {
	var req library.UpdateInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	dto, err := h.uc.Update(c.Request().Context(), c.Param("library_id"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LibraryHandler) Activate(c echo.Context) error {
	dto, err := h.uc.Activate(c.Request().Context(), c.Param("library_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LibraryHandler) Delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("library_id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *LibraryHandler) Stats(c echo.Context) error {
	dto, err := h.ledger.Stats(c.Request().Context(), c.Param("library_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
