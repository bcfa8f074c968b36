package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/expensedesk/reimbursement-service/internal/domain"
	apperrors "github.com/expensedesk/reimbursement-service/pkg/util/errorutil"
)

const sessionLocalsKey = "auth_session"

// MsgNoSession is reported whenever a request carries no usable session.
const MsgNoSession = "No session found, please login"

// SessionResolver turns a bearer token into a live session.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*domain.Session, error)
}

// AuthMiddleware validates bearer tokens and loads the session principal.
type AuthMiddleware struct {
	sessions SessionResolver
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(sessions SessionResolver) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return apperrors.NewUnauthorized(MsgNoSession)
	}

	session, err := m.sessions.Resolve(c.UserContext(), token)
	if err != nil {
		return err
	}

	c.Locals(sessionLocalsKey, session)
	c.SetUserContext(domain.ContextWithPrincipal(c.UserContext(), session.Principal))
	return c.Next()
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// SessionFromContext retrieves the session loaded by AuthMiddleware.
func SessionFromContext(c *fiber.Ctx) (*domain.Session, bool) {
	session, ok := c.Locals(sessionLocalsKey).(*domain.Session)
	return session, ok && session != nil
}

// PrincipalFromContext retrieves the authenticated user.
func PrincipalFromContext(c *fiber.Ctx) (domain.Principal, bool) {
	session, ok := SessionFromContext(c)
	if !ok {
		return domain.Principal{}, false
	}
	return session.Principal, true
}
