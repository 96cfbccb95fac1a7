package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kept7/payment-service/internal/common"
	"github.com/kept7/payment-service/internal/models"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestAudit(t *testing.T) {
	t.Run("logs method, path and caller", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/payment/all", nil)
		req = req.WithContext(common.WithIdentity(req.Context(), &models.Identity{Email: "admin@example.com"}))
		c := e.NewContext(req, httptest.NewRecorder())

		handler := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
		require.NoError(t, RequestAudit(logger)(handler)(c))

		out := buf.String()
		assert.Contains(t, out, `"method":"GET"`)
		assert.Contains(t, out, `"path":"/payment/all"`)
		assert.Contains(t, out, `"user":"admin@example.com"`)
	})

	t.Run("uses the error status for failed requests", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))

		e := echo.New()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

		handler := func(c echo.Context) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Permission denied")
		}
		err := RequestAudit(logger)(handler)(c)
		assert.Error(t, err)
		assert.Contains(t, buf.String(), `"status":401`)
	})
}
