package middleware

import (
	"errors"
	"net/http"

	"github.com/kept7/payment-service/internal/common"
	"github.com/kept7/payment-service/internal/models"
	"github.com/kept7/payment-service/internal/repositories"
	"github.com/kept7/payment-service/internal/services"

	"github.com/labstack/echo/v4"
)

// AccessTokenCookie is the cookie carrying the signed access token.
const AccessTokenCookie = "access_token"

// Authenticate resolves the caller from the access_token cookie and puts
// a models.Identity into the request context. Every failure point maps
// to 401.
func Authenticate(tokens *services.TokenService, userRepo repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(AccessTokenCookie)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
			}

			claims, err := tokens.Verify(cookie.Value)
			if err != nil {
				if errors.Is(err, services.ErrTokenExpired) {
					return echo.NewHTTPError(http.StatusUnauthorized, "Token expired")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			if claims.Subject == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token payload")
			}

			user, err := userRepo.GetByEmail(c.Request().Context(), claims.Subject)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
			}
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
			}

			identity := &models.Identity{
				Email:     user.Email,
				FirstName: user.FirstName,
				LastName:  user.LastName,
			}
			c.SetRequest(c.Request().WithContext(common.WithIdentity(c.Request().Context(), identity)))
			return next(c)
		}
	}
}

// RequireSuperuser rejects callers other than the configured superuser.
// The response is 401, not 403; the source system never distinguished
// the two.
func RequireSuperuser(superuserEmail string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := common.GetIdentityFromContext(c.Request().Context())
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
			}
			if identity.Email != superuserEmail {
				return echo.NewHTTPError(http.StatusUnauthorized, "Permission denied")
			}
			return next(c)
		}
	}
}
