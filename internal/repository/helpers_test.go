package repository

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/expensedesk/reimbursement-service/internal/persistence"
)

type mockConn struct {
	pgxmock.PgxPoolIface
	onRelease func()
}

func (c *mockConn) Release() { c.onRelease() }

// mockConnector hands out the same pgxmock pool and tracks checkouts.
type mockConnector struct {
	pool       pgxmock.PgxPoolIface
	connectErr error
	acquired   int
	released   int
}

func (m *mockConnector) Connect(context.Context) (persistence.Conn, error) {
	if m.connectErr != nil {
		return nil, m.connectErr
	}
	m.acquired++
	return &mockConn{PgxPoolIface: m.pool, onRelease: func() { m.released++ }}, nil
}

func newMockConnector(t *testing.T) (*mockConnector, pgxmock.PgxPoolIface) {
	t.Helper()
	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return &mockConnector{pool: pool}, pool
}

func assertReleased(t *testing.T, c *mockConnector) {
	t.Helper()
	require.Equal(t, c.acquired, c.released, "every connection must be released")
}
