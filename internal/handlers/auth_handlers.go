package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/kept7/payment-service/internal/common"
	"github.com/kept7/payment-service/internal/middleware"
	"github.com/kept7/payment-service/internal/models"
	"github.com/kept7/payment-service/internal/repositories"
	"github.com/kept7/payment-service/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AuthHandlers handles registration, authentication and user listing.
type AuthHandlers struct {
	userRepo repositories.UserRepository
	hasher   services.PasswordHasher
	tokens   *services.TokenService
	tokenTTL int // seconds
	logger   *slog.Logger
}

func NewAuthHandlers(userRepo repositories.UserRepository, hasher services.PasswordHasher, tokens *services.TokenService, tokenTTLSeconds int, logger *slog.Logger) *AuthHandlers {
	return &AuthHandlers{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		tokenTTL: tokenTTLSeconds,
		logger:   logger,
	}
}

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Email     string `json:"user_email"`
	Password  string `json:"user_password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Register handles POST /auth/registration.
func (h *AuthHandlers) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := common.ValidateEmail(req.Email); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := common.ValidatePassword(req.Password); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := common.ValidateUserName(req.FirstName, "first_name", common.MaxFirstNameLen); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := common.ValidateUserName(req.LastName, "last_name", common.MaxLastNameLen); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	existing, err := h.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		h.logger.Error("failed to look up user on registration", "email", req.Email, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
	if existing != nil {
		return echo.NewHTTPError(http.StatusConflict, "User already exist")
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		h.logger.Error("failed to hash password", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	user := &models.User{
		ID:           uuid.New(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
	}

	created, err := h.userRepo.Create(ctx, user)
	if err != nil {
		h.logger.Error("failed to create user", "email", req.Email, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
	if created == nil {
		// Lost a race against a concurrent registration with the same email.
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to create user")
	}

	h.logger.Info("user registered", "email", req.Email)
	return c.JSON(http.StatusOK, map[string]any{"ok": true, "msg": "User was created"})
}

// AuthRequest is the authentication payload.
type AuthRequest struct {
	Email    string `json:"user_email"`
	Password string `json:"user_password"`
}

// Authenticate handles POST /auth/authentication: verifies credentials
// and delivers the access token in an HTTP-only cookie.
func (h *AuthHandlers) Authenticate(c echo.Context) error {
	ctx := c.Request().Context()

	var req AuthRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	user, err := h.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		h.logger.Error("failed to look up user on authentication", "email", req.Email, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
	if user == nil || !h.hasher.Verify(req.Password, user.PasswordHash) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Incorrect credentials")
	}

	token, err := h.tokens.Issue(user.Email, time.Duration(h.tokenTTL)*time.Second)
	if err != nil {
		h.logger.Error("failed to issue token", "email", user.Email, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   h.tokenTTL,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	h.logger.Info("user authenticated", "email", user.Email)
	return c.JSON(http.StatusOK, map[string]any{
		"ok":         true,
		"token_type": "bearer",
		"expires_in": h.tokenTTL,
	})
}

// GetAll handles GET /auth/all (superuser only).
func (h *AuthHandlers) GetAll(c echo.Context) error {
	users, err := h.userRepo.GetAll(c.Request().Context())
	if err != nil {
		h.logger.Error("failed to list users", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
	if users == nil {
		users = []*models.User{}
	}
	return c.JSON(http.StatusOK, users)
}

// ChangePasswordRequest carries the replacement password.
type ChangePasswordRequest struct {
	Password string `json:"user_password"`
}

// ChangePassword handles PUT /auth/:user_email. A caller may only change
// their own password.
func (h *AuthHandlers) ChangePassword(c echo.Context) error {
	ctx := c.Request().Context()

	identity, ok := common.GetIdentityFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	email := c.Param("user_email")
	if email != identity.Email {
		return echo.NewHTTPError(http.StatusUnauthorized, "Permission denied")
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidatePassword(req.Password); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		h.logger.Error("failed to hash password", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	if err := h.userRepo.UpdatePassword(ctx, email, hash); err != nil {
		h.logger.Error("failed to update password", "email", email, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	h.logger.Info("password changed", "email", email)
	return c.JSON(http.StatusOK, map[string]any{"ok": true, "msg": "Password was changed"})
}
