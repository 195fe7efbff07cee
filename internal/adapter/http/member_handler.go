package http

import (
	"net/http"

	"biblios/internal/domain/member"
	"biblios/internal/usecase/ledger"

	"github.com/labstack/echo/v4"
)

type MemberHandler struct{ uc *ledger.Usecase }

func NewMemberHandler(uc *ledger.Usecase) *MemberHandler { return &MemberHandler{uc: uc} }

func (h *MemberHandler) Create(c echo.Context) error {
	var req ledger.CreateMemberInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	dto, err := h.uc.CreateMember(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *MemberHandler) Get(c echo.Context) error {
	dto, err := h.uc.GetMember(c.Request().Context(), c.Param("member_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *MemberHandler) List(c echo.Context) error {
	p, err := bindPage(c)
	if err != nil {
		return badRequest(c, "invalid paging parameters")
	}
	out, err := h.uc.ListMembers(c.Request().Context(), ledger.MemberQuery{
		LibraryID: c.QueryParam("library_id"),
		Search:    c.QueryParam("q"),
		Status:    member.Status(c.QueryParam("status")),
		Limit:     p.Limit,
		Offset:    p.Offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MemberHandler) Update(c echo.Context) error {
	var req ledger.UpdateMemberInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	dto, err := h.uc.UpdateMember(c.Request().Context(), c.Param("member_id"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *MemberHandler) Delete(c echo.Context) error {
	if err := h.uc.DeleteMember(c.Request().Context(), c.Param("member_id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
