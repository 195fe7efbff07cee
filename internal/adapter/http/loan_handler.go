package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"biblios/internal/domain/loan"
	"biblios/internal/usecase/ledger"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct{ uc *ledger.Usecase }

func NewLoanHandler(uc *ledger.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createLoanReq struct {
	BookID   string `json:"book_id" validate:"required,hex32"`
	MemberID string `json:"member_id" validate:"required,hex32"`
	// RFC3339, or a bare YYYY-MM-DD meaning the end of that day (UTC)
	DueDate string `json:"due_date" validate:"required"`
	Notes   string `json:"notes" validate:"max=500"`
}

func parseDueDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.UTC(), nil
	}
	if d, err := time.Parse(time.DateOnly, raw); err == nil {
		return d.Add(24*time.Hour - time.Second), nil
	}
	return time.Time{}, errors.New("due_date must be RFC3339 or YYYY-MM-DD")
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	due, err := parseDueDate(req.DueDate)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Kind:    "validation",
			Details: []FieldError{{Field: "due_date", Message: err.Error()}},
		})
	}
	dto, err := h.uc.CreateLoan(c.Request().Context(), ledger.CreateLoanInput{
		BookID:   req.BookID,
		MemberID: req.MemberID,
		DueDate:  due,
		Notes:    req.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.GetLoan(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// ListLoans: ?library_id=&book_id=&member_id=&status=&limit=&offset=
func (h *LoanHandler) ListLoans(c echo.Context) error {
	p, err := bindPage(c)
	if err != nil {
		return badRequest(c, "invalid paging parameters")
	}
	out, err := h.uc.ListLoans(c.Request().Context(), ledger.LoanQuery{
		LibraryID: c.QueryParam("library_id"),
		BookID:    c.QueryParam("book_id"),
		MemberID:  c.QueryParam("member_id"),
		Status:    loan.Status(c.QueryParam("status")),
		Limit:     p.Limit,
		Offset:    p.Offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoanHandler) ReturnLoan(c echo.Context) error {
	dto, err := h.uc.ReturnLoan(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) CancelLoan(c echo.Context) error {
	dto, err := h.uc.CancelLoan(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// RecomputeOverdue accepts an optional ?now= (RFC3339) for backfills.
func (h *LoanHandler) RecomputeOverdue(c echo.Context) error {
	now := time.Now()
	if raw := c.QueryParam("now"); raw != "" {
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return badRequest(c, "now must be RFC3339")
		}
		now = t
	}
	n, err := h.uc.RecomputeOverdue(c.Request().Context(), now)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"updated": n})
}
