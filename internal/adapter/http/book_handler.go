package http

import (
	"net/http"

	"biblios/internal/domain/book"
	"biblios/internal/usecase/ledger"

	"github.com/labstack/echo/v4"
)

type BookHandler struct{ uc *ledger.Usecase }

func NewBookHandler(uc *ledger.Usecase) *BookHandler { return &BookHandler{uc: uc} }

func (h *BookHandler) Create(c echo.Context) error {
	var req ledger.CreateBookInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	dto, err := h.uc.CreateBook(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *BookHandler) Get(c echo.Context) error {
	dto, err := h.uc.GetBook(c.Request().Context(), c.Param("book_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// List: ?library_id=&q=&category=&status=&limit=&offset=
func (h *BookHandler) List(c echo.Context) error {
	p, err := bindPage(c)
	if err != nil {
		return badRequest(c, "invalid paging parameters")
	}
	out, err := h.uc.ListBooks(c.Request().Context(), ledger.BookQuery{
		LibraryID: c.QueryParam("library_id"),
		Search:    c.QueryParam("q"),
		Category:  c.QueryParam("category"),
		Status:    book.Status(c.QueryParam("status")),
		Limit:     p.Limit,
		Offset:    p.Offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *BookHandler) Categories(c echo.Context) error {
	out, err := h.uc.Categories(c.Request().Context(), c.QueryParam("library_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *BookHandler) Update(c echo.Context) error {
	var req ledger.UpdateBookInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	dto, err := h.uc.UpdateBook(c.Request().Context(), c.Param("book_id"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type setStatusReq struct {
	Status string `json:"status" validate:"required,oneof=available maintenance lost"`
}

func (h *BookHandler) SetStatus(c echo.Context) error {
	var req setStatusReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	dto, err := h.uc.SetBookStatus(c.Request().Context(), c.Param("book_id"), book.Status(req.Status))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *BookHandler) Delete(c echo.Context) error {
	if err := h.uc.DeleteBook(c.Request().Context(), c.Param("book_id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
