package dto

import (
	"time"

	"github.com/expensedesk/reimbursement-service/internal/domain"
)

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse standard response for a successful login.
type LoginResponse struct {
	Principal domain.Principal `json:"principal"`
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expiresAt"`
}
