package domain

import "time"

// Status identifiers from the reimbursement_statuses reference table.
const (
	StatusPending  = 1
	StatusApproved = 2
	StatusDenied   = 3
)

// Type identifiers from the reimbursement_types reference table.
const (
	TypeLodging = 1
	TypeTravel  = 2
	TypeFood    = 3
	TypeOther   = 4
)

// Reimbursement is an expense reimbursement request.
//
// Submitted is assigned by the store. Resolved and ResolverID stay nil until
// the request is resolved.
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

// IsPending reports whether the request can still be edited.
func (r *Reimbursement) IsPending() bool {
	return r.ReimbStatusID == StatusPending
}

// HasResolution reports whether any resolution field carries a value.
func (r *Reimbursement) HasResolution() bool {
	return r.HasResolvedTime() || r.HasResolver()
}

// HasResolvedTime reports whether Resolved is set to a non-zero time.
func (r *Reimbursement) HasResolvedTime() bool {
	return r.Resolved != nil && !r.Resolved.IsZero()
}

// HasResolver reports whether ResolverID is set to a non-zero id.
func (r *Reimbursement) HasResolver() bool {
	return r.ResolverID != nil && *r.ResolverID != 0
}

// ReimbursementFields maps lookup keys accepted from clients to reimbursements columns.
var ReimbursementFields = FieldSet{
	"id":            "reimb_id",
	"amount":        "amount",
	"submitted":     "submitted",
	"resolved":      "resolved",
	"description":   "description",
	"authorId":      "author_id",
	"resolverId":    "resolver_id",
	"reimbStatusId": "reimb_status_id",
	"reimbTypeId":   "reimb_type_id",
}
