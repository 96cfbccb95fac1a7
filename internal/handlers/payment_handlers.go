package handlers

import (
	"log/slog"
	"net/http"

	"github.com/kept7/payment-service/internal/common"
	"github.com/kept7/payment-service/internal/models"
	"github.com/kept7/payment-service/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// PaymentHandlers handles payment creation, lookup and status updates.
type PaymentHandlers struct {
	paymentRepo     repositories.PaymentRepository
	paymentUserRepo repositories.PaymentUserRepository
	superuserEmail  string
	logger          *slog.Logger
}

func NewPaymentHandlers(paymentRepo repositories.PaymentRepository, paymentUserRepo repositories.PaymentUserRepository, superuserEmail string, logger *slog.Logger) *PaymentHandlers {
	return &PaymentHandlers{
		paymentRepo:     paymentRepo,
		paymentUserRepo: paymentUserRepo,
		superuserEmail:  superuserEmail,
		logger:          logger,
	}
}

// CreatePaymentRequest is the payment creation payload. CardNumber is
// bound loosely because clients send it both as "1234" and as 1234.
type CreatePaymentRequest struct {
	CardNumber any             `json:"card_number"`
	FirstName  string          `json:"first_name"`
	LastName   string          `json:"last_name"`
	SecondName *string         `json:"second_name"`
	Amount     decimal.Decimal `json:"amount"`
}

// Create handles POST /payment/. The payment row and its link row are
// not written in one transaction: when the link insert fails the payment
// is removed again by a compensating delete.
func (h *PaymentHandlers) Create(c echo.Context) error {
	ctx := c.Request().Context()

	identity, ok := common.GetIdentityFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	var req CreatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	cardNumber, err := common.ValidateCardNumber(req.CardNumber)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := common.ValidatePaymentName(req.FirstName, "first_name", common.MaxFirstNameLen); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := common.ValidatePaymentName(req.LastName, "last_name", common.MaxLastNameLen); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.SecondName != nil {
		if err := common.ValidatePaymentName(*req.SecondName, "second_name", common.MaxLastNameLen); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	if err := common.ValidateAmount(req.Amount); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	payment := &models.Payment{
		ID:         uuid.New(),
		CardNumber: cardNumber,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		SecondName: req.SecondName,
		Amount:     req.Amount,
		Status:     models.StatusCreated,
	}

	created, err := h.paymentRepo.Create(ctx, payment)
	if err != nil {
		h.logger.Error("failed to create payment", "user", identity.Email, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
	if created == nil {
		h.logger.Error("payment insert produced no row", "user", identity.Email)
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to create payment")
	}

	link, err := h.paymentUserRepo.Create(ctx, identity.Email, created.ID)
	if err != nil {
		h.logger.Error("failed to create payment-user relation", "payment_id", created.ID, "user", identity.Email, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
	if link == nil {
		// Compensating delete; a failure here leaves an orphaned payment.
		cleanup := "payment deleted"
		if err := h.paymentRepo.Delete(ctx, created.ID); err != nil {
			cleanup = "payment orphaned: " + err.Error()
		}
		h.logger.Error("failed to create payment-user relation", "payment_id", created.ID, "user", identity.Email, "cleanup", cleanup)
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to create payment-user relation")
	}

	h.logger.Info("payment created", "payment_id", created.ID, "user", identity.Email)
	return c.JSON(http.StatusOK, map[string]any{"ok": true, "msg": "Payment was created"})
}

// GetAll handles GET /payment/all (superuser only).
func (h *PaymentHandlers) GetAll(c echo.Context) error {
	payments, err := h.paymentRepo.GetAll(c.Request().Context())
	if err != nil {
		h.logger.Error("failed to list payments", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
	if payments == nil {
		payments = []*models.Payment{}
	}
	return c.JSON(http.StatusOK, payments)
}

// Get handles GET /payment/id/:payment_id.
func (h *PaymentHandlers) Get(c echo.Context) error {
	paymentID, err := uuid.Parse(c.Param("payment_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payment id")
	}

	payment, err := h.paymentRepo.Get(c.Request().Context(), paymentID)
	if err != nil {
		h.logger.Error("failed to get payment", "payment_id", paymentID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
	if payment == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Payment doesn't exist")
	}
	return c.JSON(http.StatusOK, payment)
}

// GetUserPayments handles GET /payment/email/:user_email/all.
func (h *PaymentHandlers) GetUserPayments(c echo.Context) error {
	return h.collectUserPayments(c, func(ctx echo.Context, link *models.PaymentUser) (*models.Payment, error) {
		return h.paymentRepo.Get(ctx.Request().Context(), link.PaymentID)
	})
}

// GetUserPaymentsByStatus handles GET /payment/email/:user_email/:status.
func (h *PaymentHandlers) GetUserPaymentsByStatus(c echo.Context) error {
	status, err := models.ParsePaymentStatus(c.Param("status"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payment status")
	}
	return h.collectUserPayments(c, func(ctx echo.Context, link *models.PaymentUser) (*models.Payment, error) {
		return h.paymentRepo.GetByStatus(ctx.Request().Context(), link.PaymentID, status)
	})
}

// GetUserPaymentsByAmount handles GET /payment/email/:user_email/amount/:amount,
// returning the caller's payments with amount strictly below the bound.
func (h *PaymentHandlers) GetUserPaymentsByAmount(c echo.Context) error {
	amount, err := decimal.NewFromString(c.Param("amount"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid amount")
	}
	return h.collectUserPayments(c, func(ctx echo.Context, link *models.PaymentUser) (*models.Payment, error) {
		return h.paymentRepo.GetByAmountLessThan(ctx.Request().Context(), link.PaymentID, amount)
	})
}

// collectUserPayments resolves the caller, checks the path email belongs
// to them (the superuser may read anyone's), fetches the link rows and
// maps each through lookup.
func (h *PaymentHandlers) collectUserPayments(c echo.Context, lookup func(echo.Context, *models.PaymentUser) (*models.Payment, error)) error {
	ctx := c.Request().Context()

	identity, ok := common.GetIdentityFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	email := c.Param("user_email")
	if email != identity.Email && identity.Email != h.superuserEmail {
		return echo.NewHTTPError(http.StatusUnauthorized, "Permission denied")
	}

	links, err := h.paymentUserRepo.GetByUser(ctx, email)
	if err != nil {
		h.logger.Error("failed to list payment-user relations", "user", email, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
	if len(links) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "This user has no payments")
	}

	result := make([]*models.Payment, 0, len(links))
	for _, link := range links {
		payment, err := lookup(c, link)
		if err != nil {
			h.logger.Error("failed to get payment", "payment_id", link.PaymentID, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
		}
		if payment != nil {
			result = append(result, payment)
		}
	}
	return c.JSON(http.StatusOK, result)
}

// UpdateStatus handles PUT /payment/:payment_id?status=<status>.
func (h *PaymentHandlers) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()

	paymentID, err := uuid.Parse(c.Param("payment_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payment id")
	}

	status, err := models.ParsePaymentStatus(c.QueryParam("status"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payment status")
	}

	payment, err := h.paymentRepo.Get(ctx, paymentID)
	if err != nil {
		h.logger.Error("failed to get payment", "payment_id", paymentID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
	if payment == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Payment doesn't exist")
	}

	if payment.Status.IsTerminal() {
		return echo.NewHTTPError(http.StatusBadRequest, "Payment complete")
	}

	if err := h.paymentRepo.UpdateStatus(ctx, paymentID, status); err != nil {
		h.logger.Error("failed to update payment status", "payment_id", paymentID, "status", status, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	h.logger.Info("payment status changed", "payment_id", paymentID, "status", status)
	return c.JSON(http.StatusOK, map[string]any{"ok": true, "msg": "Payment status was changed"})
}
