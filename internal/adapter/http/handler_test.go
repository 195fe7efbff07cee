package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

func callHealth(t *testing.T, h *Handler) (*httptest.ResponseRecorder, map[string]string) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)
	require.NoError(t, h.Health(c))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return rec, body
}

func TestHealth_WithoutStorage(t *testing.T) {
	start := time.Now().UTC()
	rec, body := callHealth(t, NewHandler(nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
	assert.Equal(t, "ok", body["status"])
	assert.NotContains(t, body, "storage")

	ts, err := time.Parse(time.RFC3339Nano, body["time"])
	require.NoError(t, err)
	assert.Equal(t, time.UTC, ts.Location())
	assert.WithinDuration(t, start, ts, 2*time.Second)
}

func TestHealth_StorageUp(t *testing.T) {
	var pinged bool
	rec, body := callHealth(t, NewHandler(pingerFunc(func(ctx context.Context) error {
		_, hasDeadline := ctx.Deadline()
		pinged = hasDeadline
		return nil
	})))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["storage"])
	assert.True(t, pinged, "ping runs under a deadline")
}

func TestHealth_StorageDown(t *testing.T) {
	rec, body := callHealth(t, NewHandler(pingerFunc(func(context.Context) error {
		return errors.New("refused")
	})))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, "unreachable", body["storage"])
}
