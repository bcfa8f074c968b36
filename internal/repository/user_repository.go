package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/expensedesk/reimbursement-service/internal/domain"
	"github.com/expensedesk/reimbursement-service/internal/persistence"
	"github.com/expensedesk/reimbursement-service/pkg/util/errorutil"
)

const pgUniqueViolation = "23505"

// UserRepository defines persistence access for application users.
//
// Single-row lookups never fail on a miss: they return an empty *domain.User.
type UserRepository interface {
	GetAll(ctx context.Context) ([]*domain.User, error)
	GetByID(ctx context.Context, id int) (*domain.User, error)
	// GetByUniqueKey interpolates column into the statement. Callers must pass
	// a column taken from domain.UserFields.
	GetByUniqueKey(ctx context.Context, column, value string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByCredentials(ctx context.Context, username, password string) (*domain.User, error)
	GetByRole(ctx context.Context, roleID int) ([]*domain.User, error)
	Save(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	DeleteByID(ctx context.Context, id int) error
}

const userSelect = `
        SELECT user_id, username, password, first_name, last_name, email, user_role_id
        FROM app_users`

type userRepository struct {
	db     persistence.Connector
	logger *zap.Logger
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(db persistence.Connector, logger *zap.Logger) UserRepository {
	return &userRepository{db: db, logger: logger.With(zap.String("component", "user_repository"))}
}

func (r *userRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	var users []*domain.User
	err := withConn(ctx, r.db, r.logger, "Server error happened when trying to get all users", func(conn persistence.Conn) error {
		var err error
		users, err = queryMany(ctx, conn, mapUserRow, userSelect+` ORDER BY user_id`)
		return err
	})
	return users, err
}

func (r *userRepository) GetByID(ctx context.Context, id int) (*domain.User, error) {
	return r.getOne(ctx, "Server error happened when trying to get user by ID",
		userSelect+` WHERE user_id = $1`, id)
}

func (r *userRepository) GetByUniqueKey(ctx context.Context, column, value string) (*domain.User, error) {
	return r.getOne(ctx, "Server error happened when trying to get user by unique key",
		fmt.Sprintf(`%s WHERE %s = $1`, userSelect, column), value)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, "Server error happened when trying to get user by username",
		userSelect+` WHERE username = $1`, username)
}

func (r *userRepository) GetByCredentials(ctx context.Context, username, password string) (*domain.User, error) {
	return r.getOne(ctx, "Server error happened when trying to get user by credentials",
		userSelect+` WHERE username = $1 AND password = $2`, username, password)
}

func (r *userRepository) GetByRole(ctx context.Context, roleID int) ([]*domain.User, error) {
	var users []*domain.User
	err := withConn(ctx, r.db, r.logger, "Server error happened when trying to get users by role", func(conn persistence.Conn) error {
		var err error
		users, err = queryMany(ctx, conn, mapUserRow, userSelect+` WHERE user_role_id = $1 ORDER BY user_id`, roleID)
		return err
	})
	return users, err
}

func (r *userRepository) Save(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO app_users (username, password, first_name, last_name, email, user_role_id)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING user_id`

	return withConn(ctx, r.db, r.logger, "Server error happened when trying to add new user", func(conn persistence.Conn) error {
		id, err := insertReturningID(ctx, conn, query,
			user.Username,
			user.Password,
			user.FirstName,
			user.LastName,
			user.Email,
			user.RoleID,
		)
		if err != nil {
			return translateUniqueViolation(err)
		}
		user.ID = id
		return nil
	})
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE app_users
        SET username = $2, password = $3, first_name = $4, last_name = $5, email = $6
        WHERE user_id = $1`

	return withConn(ctx, r.db, r.logger, "Server error happened when trying to update a user", func(conn persistence.Conn) error {
		cmd, err := conn.Exec(ctx, query,
			user.ID,
			user.Username,
			user.Password,
			user.FirstName,
			user.LastName,
			user.Email,
		)
		if err != nil {
			return translateUniqueViolation(err)
		}
		if cmd.RowsAffected() == 0 {
			return errorutil.NewNotFound("No user with that ID was found")
		}
		return nil
	})
}

func (r *userRepository) DeleteByID(ctx context.Context, id int) error {
	const query = `DELETE FROM app_users WHERE user_id = $1`

	return withConn(ctx, r.db, r.logger, "Server error happened when trying to delete a user", func(conn persistence.Conn) error {
		_, err := conn.Exec(ctx, query, id)
		return err
	})
}

func (r *userRepository) getOne(ctx context.Context, failMsg, query string, args ...any) (*domain.User, error) {
	var user *domain.User
	err := withConn(ctx, r.db, r.logger, failMsg, func(conn persistence.Conn) error {
		var err error
		user, err = queryOne(ctx, conn, mapUserRow, query, args...)
		return err
	})
	return user, err
}

// translateUniqueViolation turns a unique constraint failure on app_users
// into a conflict naming the field. Other errors pass through.
func translateUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return err
	}
	switch pgErr.ConstraintName {
	case "app_users_username_key":
		return errorutil.NewConflict("Username is already taken")
	case "app_users_email_key":
		return errorutil.NewConflict("Email is already taken")
	default:
		return errorutil.NewConflict("")
	}
}
