package app

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// Serve runs the HTTP API (and the overdue sweep, when configured) until
// ctx is cancelled, then shuts down gracefully.
func (a *App) Serve(ctx context.Context) error {
	if spec := a.Config.OverdueSweep; spec != "" {
		c, err := a.StartOverdueSweep(spec)
		if err != nil {
			return err
		}
		defer c.Stop()
	}

	e, err := a.NewServer()
	if err != nil {
		return err
	}

	addr := ":" + a.Config.AppPort
	errc := make(chan error, 1)
	go func() {
		a.Log.Info("listening", "addr", addr, "driver", a.Config.DBDriver, "idempotency", a.Redis != nil)
		errc <- e.Start(addr)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
