package app

import (
	"biblios/internal/adapter/http"
	"biblios/internal/adapter/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// NewServer builds the echo instance with every route mounted. Writes go
// through rate limiting and, when Redis is available, idempotency.
func (a *App) NewServer() (*echo.Echo, error) {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = http.NewValidator()
	e.Use(echomw.Recover(), middleware.RequestLogger(a.Log))

	mutating := []echo.MiddlewareFunc{
		middleware.NewRateLimiter(a.Config.RateLimitRPS, a.Config.RateLimitBurst).Middleware(),
	}
	if a.Redis != nil {
		mutating = append(mutating, middleware.Idempotency(a.Redis, middleware.IdempotencyConfig{
			TTL: a.Config.IdempotencyTTL(),
			Log: a.Log,
		}))
	}

	http.Register(e, http.Handlers{
		Health:    http.NewHandler(sqlDB),
		Libraries: http.NewLibraryHandler(a.Libraries, a.Ledger),
		Books:     http.NewBookHandler(a.Ledger),
		Members:   http.NewMemberHandler(a.Ledger),
		Loans:     http.NewLoanHandler(a.Ledger),
	}, mutating...)
	return e, nil
}
