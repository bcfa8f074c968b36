package repository

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/expensedesk/reimbursement-service/internal/domain"
	"github.com/expensedesk/reimbursement-service/internal/persistence"
	"github.com/expensedesk/reimbursement-service/pkg/util/errorutil"
)

// ReimbursementRepository encapsulates reimbursement persistence.
type ReimbursementRepository interface {
	GetAll(ctx context.Context) ([]*domain.Reimbursement, error)
	GetByID(ctx context.Context, id int) (*domain.Reimbursement, error)
	// GetByUniqueKey interpolates column into the statement. Callers must pass
	// a column taken from domain.ReimbursementFields.
	GetByUniqueKey(ctx context.Context, column, value string) (*domain.Reimbursement, error)
	GetByAuthorID(ctx context.Context, authorID int) ([]*domain.Reimbursement, error)
	// Save inserts reimb as pending with no resolution, whatever the input says.
	Save(ctx context.Context, reimb *domain.Reimbursement) error
	// Update changes amount, description and type only.
	Update(ctx context.Context, reimb *domain.Reimbursement) error
	// Resolve stamps the resolution time and stores resolver and status.
	Resolve(ctx context.Context, reimb *domain.Reimbursement) error
}

const reimbursementSelect = `
        SELECT reimb_id, amount, submitted, resolved, description, author_id,
               resolver_id, reimb_status_id, reimb_type_id
        FROM reimbursements`

type reimbursementRepository struct {
	db     persistence.Connector
	logger *zap.Logger
	now    func() time.Time
}

// NewReimbursementRepository instantiates repository.
func NewReimbursementRepository(db persistence.Connector, logger *zap.Logger) ReimbursementRepository {
	return &reimbursementRepository{
		db:     db,
		logger: logger.With(zap.String("component", "reimbursement_repository")),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *reimbursementRepository) GetAll(ctx context.Context) ([]*domain.Reimbursement, error) {
	return r.getMany(ctx, "Server error happened when trying to get all reimbursements",
		reimbursementSelect+` ORDER BY reimb_id`)
}

func (r *reimbursementRepository) GetByID(ctx context.Context, id int) (*domain.Reimbursement, error) {
	return r.getOne(ctx, "Server error happened when trying to get reimbursement by ID",
		reimbursementSelect+` WHERE reimb_id = $1`, id)
}

func (r *reimbursementRepository) GetByUniqueKey(ctx context.Context, column, value string) (*domain.Reimbursement, error) {
	return r.getOne(ctx, "Server error happened when trying to get reimbursements by unique key",
		fmt.Sprintf(`%s WHERE %s = $1`, reimbursementSelect, column), value)
}

func (r *reimbursementRepository) GetByAuthorID(ctx context.Context, authorID int) ([]*domain.Reimbursement, error) {
	return r.getMany(ctx, "Server error happened when trying to get reimbursements by author ID",
		reimbursementSelect+` WHERE author_id = $1 ORDER BY reimb_id`, authorID)
}

func (r *reimbursementRepository) Save(ctx context.Context, reimb *domain.Reimbursement) error {
	const query = `
        INSERT INTO reimbursements (amount, submitted, resolved, description, author_id, resolver_id, reimb_status_id, reimb_type_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING reimb_id`

	submitted := r.now()
	return withConn(ctx, r.db, r.logger, "Server error happened when trying to add new reimbursement", func(conn persistence.Conn) error {
		id, err := insertReturningID(ctx, conn, query,
			reimb.Amount,
			submitted,
			nil,
			reimb.Description,
			reimb.AuthorID,
			nil,
			domain.StatusPending,
			reimb.ReimbTypeID,
		)
		if err != nil {
			return err
		}
		reimb.ID = id
		reimb.Submitted = &submitted
		reimb.Resolved = nil
		reimb.ResolverID = nil
		reimb.ReimbStatusID = domain.StatusPending
		return nil
	})
}

func (r *reimbursementRepository) Update(ctx context.Context, reimb *domain.Reimbursement) error {
	const query = `
        UPDATE reimbursements
        SET amount = $2, description = $3, reimb_type_id = $4
        WHERE reimb_id = $1`

	return r.exec(ctx, "Server error happened when trying to update a reimbursement", query,
		reimb.ID,
		reimb.Amount,
		reimb.Description,
		reimb.ReimbTypeID,
	)
}

func (r *reimbursementRepository) Resolve(ctx context.Context, reimb *domain.Reimbursement) error {
	const query = `
        UPDATE reimbursements
        SET resolved = $2, resolver_id = $3, reimb_status_id = $4
        WHERE reimb_id = $1`

	resolved := r.now()
	err := r.exec(ctx, "Server error happened when resolving a reimbursement", query,
		reimb.ID,
		resolved,
		reimb.ResolverID,
		reimb.ReimbStatusID,
	)
	if err != nil {
		return err
	}
	reimb.Resolved = &resolved
	return nil
}

func (r *reimbursementRepository) exec(ctx context.Context, failMsg, query string, args ...any) error {
	return withConn(ctx, r.db, r.logger, failMsg, func(conn persistence.Conn) error {
		cmd, err := conn.Exec(ctx, query, args...)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return errorutil.NewNotFound("No reimbursement with that ID was found")
		}
		return nil
	})
}

func (r *reimbursementRepository) getOne(ctx context.Context, failMsg, query string, args ...any) (*domain.Reimbursement, error) {
	var reimb *domain.Reimbursement
	err := withConn(ctx, r.db, r.logger, failMsg, func(conn persistence.Conn) error {
		var err error
		reimb, err = queryOne(ctx, conn, mapReimbursementRow, query, args...)
		return err
	})
	return reimb, err
}

func (r *reimbursementRepository) getMany(ctx context.Context, failMsg, query string, args ...any) ([]*domain.Reimbursement, error) {
	var reimbs []*domain.Reimbursement
	err := withConn(ctx, r.db, r.logger, failMsg, func(conn persistence.Conn) error {
		var err error
		reimbs, err = queryMany(ctx, conn, mapReimbursementRow, query, args...)
		return err
	})
	return reimbs, err
}
