package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/expensedesk/reimbursement-service/internal/api/dto"
	"github.com/expensedesk/reimbursement-service/internal/auth"
	"github.com/expensedesk/reimbursement-service/internal/service"
	apperrors "github.com/expensedesk/reimbursement-service/pkg/util/errorutil"
)

// AuthService opens and closes sessions.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*service.LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
}

// AuthHandler exposes session endpoints.
type AuthHandler struct {
	auth AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	result, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.LoginResponse{
		Principal: result.Principal,
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	})
}

// Logout handles DELETE /auth.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.MsgNoSession)
	}
	if err := h.auth.Logout(c.UserContext(), session.ID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
