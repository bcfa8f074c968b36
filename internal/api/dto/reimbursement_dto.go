package dto

import (
	"time"

	"github.com/expensedesk/reimbursement-service/internal/domain"
)

// Reimbursement is the wire form of a reimbursement, used for both requests
// and responses.
type Reimbursement struct {
	ID            int        `json:"id"`
	Amount        float64    `json:"amount"`
	Submitted     *time.Time `json:"submitted"`
	Resolved      *time.Time `json:"resolved"`
	Description   string     `json:"description"`
	AuthorID      int        `json:"authorId"`
	ResolverID    *int       `json:"resolverId"`
	ReimbStatusID int        `json:"reimbStatusId"`
	ReimbTypeID   int        `json:"reimbTypeId"`
}

// ToDomain converts the request.
func (r Reimbursement) ToDomain() *domain.Reimbursement {
	return &domain.Reimbursement{
		ID:            r.ID,
		Amount:        r.Amount,
		Submitted:     r.Submitted,
		Resolved:      r.Resolved,
		Description:   r.Description,
		AuthorID:      r.AuthorID,
		ResolverID:    r.ResolverID,
		ReimbStatusID: r.ReimbStatusID,
		ReimbTypeID:   r.ReimbTypeID,
	}
}

// NewReimbursement converts a domain reimbursement.
func NewReimbursement(r *domain.Reimbursement) Reimbursement {
	return Reimbursement{
		ID:            r.ID,
		Amount:        r.Amount,
		Submitted:     r.Submitted,
		Resolved:      r.Resolved,
		Description:   r.Description,
		AuthorID:      r.AuthorID,
		ResolverID:    r.ResolverID,
		ReimbStatusID: r.ReimbStatusID,
		ReimbTypeID:   r.ReimbTypeID,
	}
}

// NewReimbursements converts a list.
func NewReimbursements(reimbs []*domain.Reimbursement) []Reimbursement {
	out := make([]Reimbursement, 0, len(reimbs))
	for _, r := range reimbs {
		out = append(out, NewReimbursement(r))
	}
	return out
}
