package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/expensedesk/reimbursement-service/internal/domain"
	"github.com/expensedesk/reimbursement-service/internal/events"
	"github.com/expensedesk/reimbursement-service/internal/repository"
	"github.com/expensedesk/reimbursement-service/internal/validation"
	"github.com/expensedesk/reimbursement-service/pkg/util/errorutil"
)

// UserService enforces the business rules around application users.
type UserService struct {
	users      repository.UserRepository
	rules      validation.Rules
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// UserDependencies bundles collaborators for the user service.
type UserDependencies struct {
	UserRepo   repository.UserRepository
	Rules      validation.Rules
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewUserService constructs the service.
func NewUserService(deps UserDependencies) *UserService {
	rules := deps.Rules
	if rules == nil {
		rules = validation.New()
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		users:      deps.UserRepo,
		rules:      rules,
		dispatcher: deps.Dispatcher,
		logger:     logger.With(zap.String("component", "user_service")),
	}
}

// GetAllUsers returns every user. An empty table is reported as not found.
func (s *UserService) GetAllUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, errorutil.NewNotFound("No users in the database.")
	}
	return users, nil
}

// GetUserByID fetches a single user.
func (s *UserService) GetUserByID(ctx context.Context, id int) (*domain.User, error) {
	if !s.rules.IsValidID(id) {
		return nil, errorutil.NewInvalidInput(msgInvalidID)
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.rules.HasContent(user) {
		return nil, errorutil.NewNotFound("No user with that ID was found")
	}
	return user, nil
}

// GetUserByUniqueKey looks a user up by any allow-listed field.
func (s *UserService) GetUserByUniqueKey(ctx context.Context, lookup domain.Lookup) (*domain.User, error) {
	if !s.rules.IsPropertyOf(lookup.Key, domain.UserFields) {
		return nil, errorutil.NewInvalidInput("Key is not a property of a User")
	}
	if lookup.Key == domain.LookupKeyID {
		id, err := lookupID(s.rules.IsValidID, lookup.Value)
		if err != nil {
			return nil, err
		}
		return s.GetUserByID(ctx, id)
	}
	if !s.rules.IsValidString(lookup.Value) {
		return nil, errorutil.NewInvalidInput("Value is not a string")
	}

	column, _ := domain.UserFields.Column(lookup.Key)
	user, err := s.users.GetByUniqueKey(ctx, column, lookup.Value)
	if err != nil {
		return nil, err
	}
	if !s.rules.HasContent(user) {
		return nil, errorutil.NewNotFound("No user found with given properties")
	}
	return user, nil
}

// GetUserByUsername fetches a user by login name.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	if !s.rules.IsValidString(username) {
		return nil, errorutil.NewInvalidInput("Invalid username was input")
	}
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !s.rules.HasContent(user) {
		return nil, errorutil.NewNotFound("No user with that username was found")
	}
	return user, nil
}

// Authenticate matches a username and password. A miss never reveals
// whether the username exists.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	if !s.rules.IsValidString(username, password) {
		return nil, errorutil.NewInvalidInput("Invalid username or password was input")
	}
	user, err := s.users.GetByCredentials(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if !s.rules.HasContent(user) {
		return nil, errorutil.NewUnauthorized("Invalid credentials provided")
	}
	return user, nil
}

// GetUsersByRole lists users holding roleID.
func (s *UserService) GetUsersByRole(ctx context.Context, roleID int) ([]*domain.User, error) {
	if !s.rules.IsValidID(roleID) {
		return nil, errorutil.NewInvalidInput(msgInvalidID)
	}
	users, err := s.users.GetByRole(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, errorutil.NewNotFound("No users with that role were found")
	}
	return users, nil
}

// AddNewUser registers a user. Every field but ID must be set, and the
// username and email must both be free.
func (s *UserService) AddNewUser(ctx context.Context, user *domain.User) (bool, error) {
	if !s.rules.IsValidObject(user, "ID") {
		return false, errorutil.NewInvalidInput("Invalid user was input")
	}

	if err := s.ensureAvailable(ctx, user, nil); err != nil {
		return false, err
	}

	if err := s.users.Save(ctx, user); err != nil {
		return false, err
	}

	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:     events.EventUserRegistered,
		EntityID: user.ID,
		Payload:  events.UserPayload{Username: user.Username, RoleID: user.RoleID},
	})
	return true, nil
}

// UpdateUser replaces every mutable field of an existing user.
func (s *UserService) UpdateUser(ctx context.Context, user *domain.User) (bool, error) {
	if user == nil || !s.rules.IsValidID(user.ID) || !s.rules.IsValidObject(user) {
		return false, errorutil.NewInvalidInput("Invalid user was input")
	}

	existing, err := s.GetUserByID(ctx, user.ID)
	if err != nil {
		return false, err
	}

	if err := s.ensureAvailable(ctx, user, existing); err != nil {
		return false, err
	}

	if err := s.users.Update(ctx, user); err != nil {
		return false, err
	}

	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:     events.EventUserUpdated,
		EntityID: user.ID,
		Payload:  events.UserPayload{Username: user.Username, RoleID: existing.RoleID},
	})
	return true, nil
}

// DeleteUser removes the user whose id is the lookup value. The key name is
// not checked.
func (s *UserService) DeleteUser(ctx context.Context, lookup domain.Lookup) (bool, error) {
	id, err := lookupID(s.rules.IsValidID, lookup.Value)
	if err != nil {
		return false, err
	}

	existing, err := s.GetUserByID(ctx, id)
	if err != nil {
		return false, err
	}

	if err := s.users.DeleteByID(ctx, id); err != nil {
		return false, err
	}

	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:     events.EventUserDeleted,
		EntityID: id,
		Payload:  events.UserPayload{Username: existing.Username, RoleID: existing.RoleID},
	})
	return true, nil
}

// ensureAvailable fails when user's username or email belongs to someone
// else. Values equal to existing's are allowed; existing is nil on create.
func (s *UserService) ensureAvailable(ctx context.Context, user, existing *domain.User) error {
	if existing == nil || user.Username != existing.Username {
		taken, err := s.isTaken(ctx, "username", user.Username)
		if err != nil {
			return err
		}
		if taken {
			return errorutil.NewConflict("Username is already taken")
		}
	}

	if existing == nil || user.Email != existing.Email {
		taken, err := s.isTaken(ctx, "email", user.Email)
		if err != nil {
			return err
		}
		if taken {
			return errorutil.NewConflict("Email is already taken")
		}
	}
	return nil
}

func (s *UserService) isTaken(ctx context.Context, key, value string) (bool, error) {
	column, _ := domain.UserFields.Column(key)
	user, err := s.users.GetByUniqueKey(ctx, column, value)
	if err != nil {
		return false, err
	}
	return s.rules.HasContent(user), nil
}
