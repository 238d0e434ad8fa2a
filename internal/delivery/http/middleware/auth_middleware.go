// Package middleware contains the HTTP middleware for the application.
package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "gatekeeper/internal/delivery/context"
	"gatekeeper/internal/delivery/http/response"
	"gatekeeper/internal/domain/entity"
	"gatekeeper/internal/domain/repository"
	"gatekeeper/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const bearerPrefix = "Bearer "

// AuthMiddleware provides middleware for identity-token authentication and
// role-based authorization.
type AuthMiddleware struct {
	tokenSvc    service.TokenService
	accountRepo repository.AccountRepository
	logger      *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, accountRepo repository.AccountRepository, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, accountRepo: accountRepo, logger: logger}
}

// Authenticate validates the bearer token, loads the matching account and
// attaches its identity to the request context. Any unexpected store failure
// surfaces as a 500 without leaking the underlying error.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" || !strings.HasPrefix(authHeader, bearerPrefix) {
			return response.Unauthorized(c, "Access token required")
		}

		tokenString := strings.TrimPrefix(authHeader, bearerPrefix)

		claims, err := m.tokenSvc.ValidateIdentityToken(tokenString)
		if err != nil {
			return response.Unauthorized(c, "Invalid or expired token")
		}

		ctx := c.Request().Context()

		account, err := m.accountRepo.FindByID(ctx, claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return response.Unauthorized(c, "User not found")
			}

			m.logger.Error("Authentication lookup failed",
				slog.Int64("userID", claims.UserID),
				slog.Any("error", err),
			)

			return response.InternalServerError(c, "Authentication failed")
		}

		// Thread the identity explicitly through the request context.
		ctx = deliverycontext.WithIdentity(ctx, entity.NewIdentity(account))
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// RequireRole is a middleware factory gating access to the given role set.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(allowed ...entity.Role) echo.MiddlewareFunc {
	allowedRoles := entity.Roles(allowed)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := deliverycontext.GetIdentity(c.Request().Context())
			if !ok {
				return response.Unauthorized(c, "Authentication required")
			}

			if !allowedRoles.Contains(identity.Role) {
				return response.Forbidden(c, "Insufficient permissions")
			}

			return next(c)
		}
	}
}
