package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/expensedesk/reimbursement-service/pkg/util/errorutil"
)

// RequireAuthenticated ensures a session was loaded.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized(MsgNoSession)
		}
		return c.Next()
	}
}

// RequireRole ensures the principal holds one of the allowed roles.
func RequireRole(allowed ...int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized(MsgNoSession)
		}
		if !principal.HasRole(allowed...) {
			return apperrors.NewForbidden("")
		}
		return c.Next()
	}
}
