package repository

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/expensedesk/reimbursement-service/internal/domain"
)

// userRow mirrors an app_users record.
type userRow struct {
	UserID     int    `db:"user_id"`
	Username   string `db:"username"`
	Password   string `db:"password"`
	FirstName  string `db:"first_name"`
	LastName   string `db:"last_name"`
	Email      string `db:"email"`
	UserRoleID int    `db:"user_role_id"`
}

// reimbursementRow mirrors a reimbursements record.
type reimbursementRow struct {
	ReimbID       int                `db:"reimb_id"`
	Amount        float64            `db:"amount"`
	Submitted     pgtype.Timestamptz `db:"submitted"`
	Resolved      pgtype.Timestamptz `db:"resolved"`
	Description   string             `db:"description"`
	AuthorID      int                `db:"author_id"`
	ResolverID    pgtype.Int4        `db:"resolver_id"`
	ReimbStatusID int                `db:"reimb_status_id"`
	ReimbTypeID   int                `db:"reimb_type_id"`
}

// mapUserRow converts a row into a User. A nil row yields an empty User,
// never nil.
func mapUserRow(row *userRow) *domain.User {
	if row == nil {
		return &domain.User{}
	}
	return &domain.User{
		ID:        row.UserID,
		Username:  row.Username,
		Password:  row.Password,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		Email:     row.Email,
		RoleID:    row.UserRoleID,
	}
}

// mapReimbursementRow converts a row into a Reimbursement. A nil row yields
// an empty Reimbursement, never nil.
func mapReimbursementRow(row *reimbursementRow) *domain.Reimbursement {
	if row == nil {
		return &domain.Reimbursement{}
	}
	return &domain.Reimbursement{
		ID:            row.ReimbID,
		Amount:        row.Amount,
		Submitted:     timePtr(row.Submitted),
		Resolved:      timePtr(row.Resolved),
		Description:   row.Description,
		AuthorID:      row.AuthorID,
		ResolverID:    intPtr(row.ResolverID),
		ReimbStatusID: row.ReimbStatusID,
		ReimbTypeID:   row.ReimbTypeID,
	}
}

func timePtr(ts pgtype.Timestamptz) *time.Time {
	if !ts.Valid {
		return nil
	}
	t := ts.Time
	return &t
}

func intPtr(n pgtype.Int4) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int32)
	return &v
}
