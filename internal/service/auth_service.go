package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/expensedesk/reimbursement-service/internal/auth"
	"github.com/expensedesk/reimbursement-service/internal/domain"
	"github.com/expensedesk/reimbursement-service/pkg/util/errorutil"
)

// Authenticator checks a username and password pair.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
}

// LoginResult is returned to a client after a successful login.
type LoginResult struct {
	Principal domain.Principal
	Token     string
	ExpiresAt time.Time
}

// AuthService coordinates login sessions.
type AuthService struct {
	users    Authenticator
	sessions auth.SessionStore
	tokens   *auth.TokenManager
	logger   *zap.Logger
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	Users    Authenticator
	Sessions auth.SessionStore
	Tokens   *auth.TokenManager
	Logger   *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:    deps.Users,
		sessions: deps.Sessions,
		tokens:   deps.Tokens,
		logger:   logger.With(zap.String("component", "auth_service")),
	}
}

// Login authenticates the user and opens a session.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.Create(ctx, domain.NewPrincipal(user))
	if err != nil {
		s.logger.Error("create session", zap.Int("user_id", user.ID), zap.Error(err))
		return nil, errorutil.NewInternalError("Server error happened when creating a session", err)
	}

	token, err := s.tokens.GenerateToken(session)
	if err != nil {
		s.logger.Error("sign token", zap.Int("user_id", user.ID), zap.Error(err))
		return nil, errorutil.NewInternalError("Server error happened when creating a session", err)
	}

	return &LoginResult{Principal: session.Principal, Token: token, ExpiresAt: session.ExpiresAt}, nil
}

// Logout ends the session. Unknown sessions are not an error.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		s.logger.Error("delete session", zap.String("session_id", sessionID), zap.Error(err))
		return errorutil.NewInternalError("Server error happened when ending a session", err)
	}
	return nil
}

// Resolve loads the live session a token points at.
func (s *AuthService) Resolve(ctx context.Context, token string) (*domain.Session, error) {
	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		return nil, errorutil.NewUnauthorized(auth.MsgNoSession)
	}

	session, err := s.sessions.Get(ctx, claims.SessionID)
	if errors.Is(err, auth.ErrSessionNotFound) {
		return nil, errorutil.NewUnauthorized(auth.MsgNoSession)
	}
	if err != nil {
		s.logger.Error("load session", zap.String("session_id", claims.SessionID), zap.Error(err))
		return nil, errorutil.NewInternalError("Server error happened when loading a session", err)
	}
	return session, nil
}
