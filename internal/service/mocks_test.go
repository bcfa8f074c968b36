package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/expensedesk/reimbursement-service/internal/domain"
	"github.com/expensedesk/reimbursement-service/internal/events"
)

// --- Mocks ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByUniqueKey(ctx context.Context, column, value string) (*domain.User, error) {
	args := m.Called(ctx, column, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByCredentials(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByRole(ctx context.Context, roleID int) ([]*domain.User, error) {
	args := m.Called(ctx, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteByID(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockReimbursementRepository struct {
	mock.Mock
}

func (m *MockReimbursementRepository) GetAll(ctx context.Context) ([]*domain.Reimbursement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Reimbursement), args.Error(1)
}

func (m *MockReimbursementRepository) GetByID(ctx context.Context, id int) (*domain.Reimbursement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reimbursement), args.Error(1)
}

func (m *MockReimbursementRepository) GetByUniqueKey(ctx context.Context, column, value string) (*domain.Reimbursement, error) {
	args := m.Called(ctx, column, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reimbursement), args.Error(1)
}

func (m *MockReimbursementRepository) GetByAuthorID(ctx context.Context, authorID int) ([]*domain.Reimbursement, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Reimbursement), args.Error(1)
}

func (m *MockReimbursementRepository) Save(ctx context.Context, reimb *domain.Reimbursement) error {
	args := m.Called(ctx, reimb)
	return args.Error(0)
}

func (m *MockReimbursementRepository) Update(ctx context.Context, reimb *domain.Reimbursement) error {
	args := m.Called(ctx, reimb)
	return args.Error(0)
}

func (m *MockReimbursementRepository) Resolve(ctx context.Context, reimb *domain.Reimbursement) error {
	args := m.Called(ctx, reimb)
	return args.Error(0)
}

// recordingDispatcher captures published events.
type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	out := make([]events.EventType, 0, len(d.published))
	for _, e := range d.published {
		out = append(out, e.Type)
	}
	return out
}
