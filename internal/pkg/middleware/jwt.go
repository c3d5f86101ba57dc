package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	jwtpkg "github.com/piresc/carpool/internal/pkg/jwt"
	"github.com/piresc/carpool/internal/pkg/models"
	"github.com/piresc/carpool/internal/utils"
)

const (
	// ContextKeyUserID holds the authenticated account id
	ContextKeyUserID = "user_id"
	// ContextKeyUserRole holds the authenticated account role
	ContextKeyUserRole = "user_role"
	// ContextKeyAccount holds the full models.Account
	ContextKeyAccount = "account"
)

// JWTAuthMiddleware creates a middleware for JWT authentication
func JWTAuthMiddleware(config models.JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return utils.UnauthorizedResponse(c, "Authorization header is required")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
				return utils.UnauthorizedResponse(c, "Invalid authorization format")
			}

			account, err := jwtpkg.ValidateToken(parts[1], config.Secret)
			if err != nil {
				return utils.UnauthorizedResponse(c, "Invalid token")
			}

			c.Set(ContextKeyUserID, account.ID)
			c.Set(ContextKeyUserRole, account.Role)
			c.Set(ContextKeyAccount, account)

			return next(c)
		}
	}
}

// AccountFromContext returns the account set by JWTAuthMiddleware
func AccountFromContext(c echo.Context) (models.Account, bool) {
	account, ok := c.Get(ContextKeyAccount).(models.Account)
	return account, ok
}
