package handlers

import (
	"log/slog"
	"net/http"

	"github.com/kept7/payment-service/internal/models"
	"github.com/kept7/payment-service/internal/repositories"

	"github.com/labstack/echo/v4"
)

// AdminHandlers exposes the raw payment-user link rows to the superuser.
type AdminHandlers struct {
	paymentUserRepo repositories.PaymentUserRepository
	logger          *slog.Logger
}

func NewAdminHandlers(paymentUserRepo repositories.PaymentUserRepository, logger *slog.Logger) *AdminHandlers {
	return &AdminHandlers{paymentUserRepo: paymentUserRepo, logger: logger}
}

// GetAllPaymentUsers handles GET /admin/user_payment/all.
func (h *AdminHandlers) GetAllPaymentUsers(c echo.Context) error {
	links, err := h.paymentUserRepo.GetAll(c.Request().Context())
	if err != nil {
		h.logger.Error("failed to list payment-user relations", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
	if links == nil {
		links = []*models.PaymentUser{}
	}
	return c.JSON(http.StatusOK, links)
}
