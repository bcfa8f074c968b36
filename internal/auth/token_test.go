package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expensedesk/reimbursement-service/internal/domain"
)

func testSession(expiresIn time.Duration) *domain.Session {
	now := time.Now()
	return &domain.Session{
		ID:        "5f1c2b9e-0c1d-4a57-9f0e-1d6f4c2a7b11",
		Principal: domain.Principal{ID: 2, Username: "fin", RoleID: domain.RoleFinancialManager},
		IssuedAt:  now,
		ExpiresAt: now.Add(expiresIn),
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	token, err := tm.GenerateToken(testSession(time.Hour))
	require.NoError(t, err)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "5f1c2b9e-0c1d-4a57-9f0e-1d6f4c2a7b11", claims.SessionID)
	assert.Equal(t, 2, claims.UserID)
	assert.Equal(t, domain.RoleFinancialManager, claims.RoleID)
	assert.Equal(t, "2", claims.Subject)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret", time.Hour).GenerateToken(testSession(time.Hour))
	require.NoError(t, err)

	_, err = NewTokenManager("other", time.Hour).ParseToken(token)
	assert.Error(t, err)
}

func TestTokenRejectsExpired(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	token, err := tm.GenerateToken(testSession(-time.Minute))
	require.NoError(t, err)

	_, err = tm.ParseToken(token)
	assert.Error(t, err)
}

func TestTokenManagerDefaultTTL(t *testing.T) {
	assert.Equal(t, time.Hour, NewTokenManager("secret", 0).TTL())
}
