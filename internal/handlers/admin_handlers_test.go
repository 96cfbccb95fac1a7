package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAllPaymentUsers(t *testing.T) {
	t.Run("lists all link rows", func(t *testing.T) {
		linkRepo := newFakePaymentUserRepo()
		linkRepo.links[uuid.New()] = "alice@example.com"
		linkRepo.links[uuid.New()] = "bob@example.com"
		h := NewAdminHandlers(linkRepo, testLogger())

		e := echo.New()
		c, rec := doJSON(e, http.MethodGet, "/admin/user_payment/all", "")
		require.NoError(t, h.GetAllPaymentUsers(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var links []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &links))
		assert.Len(t, links, 2)
	})

	t.Run("empty table serializes as an empty list", func(t *testing.T) {
		h := NewAdminHandlers(newFakePaymentUserRepo(), testLogger())

		e := echo.New()
		c, rec := doJSON(e, http.MethodGet, "/admin/user_payment/all", "")
		require.NoError(t, h.GetAllPaymentUsers(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})
}
