package events

import (
	"time"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered         EventType = "user_registered"
	EventUserUpdated            EventType = "user_updated"
	EventUserDeleted            EventType = "user_deleted"
	EventReimbursementSubmitted EventType = "reimbursement_submitted"
	EventReimbursementUpdated   EventType = "reimbursement_updated"
	EventReimbursementResolved  EventType = "reimbursement_resolved"
)

// Actor identifies the authenticated user behind a change. UserID is nil when
// the change was made outside a session.
type Actor struct {
	UserID   *int   `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	EntityID  int         `json:"entity_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserPayload describes the user a user_* event refers to.
type UserPayload struct {
	Username string `json:"username,omitempty"`
	RoleID   int    `json:"role_id,omitempty"`
}

// ReimbursementSubmittedPayload payload.
type ReimbursementSubmittedPayload struct {
	AuthorID    int     `json:"author_id"`
	Amount      float64 `json:"amount"`
	ReimbTypeID int     `json:"reimb_type_id"`
}

// ReimbursementUpdatedPayload payload.
type ReimbursementUpdatedPayload struct {
	Amount      float64 `json:"amount"`
	ReimbTypeID int     `json:"reimb_type_id"`
}

// ReimbursementResolvedPayload payload.
type ReimbursementResolvedPayload struct {
	AuthorID   int `json:"author_id"`
	ResolverID int `json:"resolver_id"`
	OldStatus  int `json:"old_status"`
	NewStatus  int `json:"new_status"`
}
