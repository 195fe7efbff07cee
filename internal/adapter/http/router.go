package http

import "github.com/labstack/echo/v4"

type Handlers struct {
	Health    *Handler
	Libraries *LibraryHandler
	Books     *BookHandler
	Members   *MemberHandler
	Loans     *LoanHandler
}

// Register mounts every route on e. mutating wraps the write endpoints
// (idempotency, rate limiting); reads go without it.
func Register(e *echo.Echo, h Handlers, mutating ...echo.MiddlewareFunc) {
	e.GET("/health", h.Health.Health)

	e.GET("/libraries", h.Libraries.List)
	e.POST("/libraries", h.Libraries.Create, mutating...)
	e.GET("/libraries/current", h.Libraries.Current)
	e.GET("/libraries/:library_id", h.Libraries.Get)
	e.PUT("/libraries/:library_id", h.Libraries.Update, mutating...)
	e.DELETE("/libraries/:library_id", h.Libraries.Delete, mutating...)
	e.POST("/libraries/:library_id/activate", h.Libraries.Activate, mutating...)
	e.GET("/libraries/:library_id/stats", h.Libraries.Stats)

	e.GET("/books", h.Books.List)
	e.POST("/books", h.Books.Create, mutating...)
	e.GET("/books/categories", h.Books.Categories)
	e.GET("/books/:book_id", h.Books.Get)
	e.PUT("/books/:book_id", h.Books.Update, mutating...)
	e.DELETE("/books/:book_id", h.Books.Delete, mutating...)
	e.PUT("/books/:book_id/status", h.Books.SetStatus, mutating...)

	e.GET("/members", h.Members.List)
	e.POST("/members", h.Members.Create, mutating...)
	e.GET("/members/:member_id", h.Members.Get)
	e.PUT("/members/:member_id", h.Members.Update, mutating...)
	e.DELETE("/members/:member_id", h.Members.Delete, mutating...)

	e.GET("/loans", h.Loans.ListLoans)
	e.POST("/loans", h.Loans.CreateLoan, mutating...)
	e.POST("/loans/overdue/recompute", h.Loans.RecomputeOverdue, mutating...)
	e.GET("/loans/:loan_id", h.Loans.GetLoan)
	e.POST("/loans/:loan_id/return", h.Loans.ReturnLoan, mutating...)
	e.POST("/loans/:loan_id/cancel", h.Loans.CancelLoan, mutating...)
}
