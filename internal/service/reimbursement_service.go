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

const msgInvalidReimb = "Invalid Reimbursment was input"

// ReimbursementService coordinates reimbursement workflows.
type ReimbursementService struct {
	reimbs     repository.ReimbursementRepository
	rules      validation.Rules
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// ReimbursementDependencies bundles collaborators for the reimbursement service.
type ReimbursementDependencies struct {
	ReimbRepo  repository.ReimbursementRepository
	Rules      validation.Rules
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewReimbursementService constructs the service.
func NewReimbursementService(deps ReimbursementDependencies) *ReimbursementService {
	rules := deps.Rules
	if rules == nil {
		rules = validation.New()
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReimbursementService{
		reimbs:     deps.ReimbRepo,
		rules:      rules,
		dispatcher: deps.Dispatcher,
		logger:     logger.With(zap.String("component", "reimbursement_service")),
	}
}

// GetAllReimbs returns every reimbursement. An empty table is reported as
// not found.
func (s *ReimbursementService) GetAllReimbs(ctx context.Context) ([]*domain.Reimbursement, error) {
	reimbs, err := s.reimbs.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(reimbs) == 0 {
		return nil, errorutil.NewNotFound("No Reimbursments found in the database")
	}
	return reimbs, nil
}

// GetReimbByID fetches a single reimbursement.
func (s *ReimbursementService) GetReimbByID(ctx context.Context, id int) (*domain.Reimbursement, error) {
	if !s.rules.IsValidID(id) {
		return nil, errorutil.NewInvalidInput(msgInvalidID)
	}
	reimb, err := s.reimbs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.rules.HasContent(reimb) {
		return nil, errorutil.NewNotFound("No reimbursment with that ID was found")
	}
	return reimb, nil
}

// GetReimbByUniqueKey looks a reimbursement up by any allow-listed field.
func (s *ReimbursementService) GetReimbByUniqueKey(ctx context.Context, lookup domain.Lookup) (*domain.Reimbursement, error) {
	if !s.rules.IsPropertyOf(lookup.Key, domain.ReimbursementFields) {
		return nil, errorutil.NewInvalidInput("Key is not a property of a Reimbursment")
	}
	if lookup.Key == domain.LookupKeyID {
		id, err := lookupID(s.rules.IsValidID, lookup.Value)
		if err != nil {
			return nil, err
		}
		return s.GetReimbByID(ctx, id)
	}
	if !s.rules.IsValidString(lookup.Value) {
		return nil, errorutil.NewInvalidInput("Value is not a string")
	}

	column, _ := domain.ReimbursementFields.Column(lookup.Key)
	reimb, err := s.reimbs.GetByUniqueKey(ctx, column, lookup.Value)
	if err != nil {
		return nil, err
	}
	if !s.rules.HasContent(reimb) {
		return nil, errorutil.NewNotFound("No reimbursment found with given properties")
	}
	return reimb, nil
}

// GetReimbsByAuthorID lists the reimbursements submitted by the user whose
// id is the lookup value.
func (s *ReimbursementService) GetReimbsByAuthorID(ctx context.Context, lookup domain.Lookup) ([]*domain.Reimbursement, error) {
	id, err := lookupID(s.rules.IsValidID, lookup.Value)
	if err != nil {
		return nil, err
	}
	reimbs, err := s.reimbs.GetByAuthorID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(reimbs) == 0 {
		return nil, errorutil.NewNotFound("No reimbursments with that author ID was found")
	}
	return reimbs, nil
}

// AddNewReimb submits a reimbursement. The store assigns the id and
// submission time and forces the status to pending.
func (s *ReimbursementService) AddNewReimb(ctx context.Context, reimb *domain.Reimbursement) (bool, error) {
	if !s.rules.IsValidObject(reimb, "ID", "Submitted", "Resolved", "ResolverID", "ReimbStatusID") {
		return false, errorutil.NewInvalidInput(msgInvalidReimb)
	}
	if !s.rules.IsValidID(reimb.AuthorID) {
		return false, errorutil.NewInvalidInput("Invalid author ID was input")
	}
	if !s.rules.IsValidID(reimb.ReimbTypeID) {
		return false, errorutil.NewInvalidInput("Invalid type ID was input")
	}

	if err := s.reimbs.Save(ctx, reimb); err != nil {
		return false, err
	}

	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:     events.EventReimbursementSubmitted,
		EntityID: reimb.ID,
		Payload: events.ReimbursementSubmittedPayload{
			AuthorID:    reimb.AuthorID,
			Amount:      reimb.Amount,
			ReimbTypeID: reimb.ReimbTypeID,
		},
	})
	return true, nil
}

// UpdateReimb edits amount, description and type of a pending
// reimbursement. Conflicts are checked in a fixed order: status, author,
// resolved time, resolver.
func (s *ReimbursementService) UpdateReimb(ctx context.Context, reimb *domain.Reimbursement) (bool, error) {
	if !s.rules.IsValidObject(reimb, "ID", "Submitted", "Resolved", "ResolverID") || !s.rules.IsValidID(reimb.ID) {
		return false, errorutil.NewInvalidInput(msgInvalidReimb)
	}

	existing, err := s.GetReimbByID(ctx, reimb.ID)
	if err != nil {
		return false, err
	}

	switch {
	case !existing.IsPending():
		return false, errorutil.NewConflict("Cannot update a non-pending Reimbursment")
	case reimb.AuthorID != existing.AuthorID:
		return false, errorutil.NewConflict("Cannot update author ID")
	case reimb.HasResolvedTime():
		return false, errorutil.NewConflict("Cannot update resolved time")
	case reimb.HasResolver():
		return false, errorutil.NewConflict("Cannot update resolver")
	}

	if err := s.reimbs.Update(ctx, reimb); err != nil {
		return false, err
	}

	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:     events.EventReimbursementUpdated,
		EntityID: reimb.ID,
		Payload:  events.ReimbursementUpdatedPayload{Amount: reimb.Amount, ReimbTypeID: reimb.ReimbTypeID},
	})
	return true, nil
}

// ResolveReimb approves or denies a pending reimbursement. The existing
// record's id is resolved with the resolver and status from reimb.
func (s *ReimbursementService) ResolveReimb(ctx context.Context, reimb *domain.Reimbursement) (bool, error) {
	if !s.rules.IsValidObject(reimb, "ID", "Resolved") || !s.rules.IsValidID(reimb.ID) {
		return false, errorutil.NewInvalidInput(msgInvalidReimb)
	}
	if reimb.ResolverID == nil || !s.rules.IsValidID(*reimb.ResolverID) {
		return false, errorutil.NewInvalidInput("Invalid resolver ID was input")
	}
	switch reimb.ReimbStatusID {
	case domain.StatusApproved, domain.StatusDenied:
	case domain.StatusPending:
		return false, errorutil.NewInvalidInput("Cannot resolve a Reimbursment to pending")
	default:
		return false, errorutil.NewInvalidInput("Invalid status ID was input")
	}

	existing, err := s.GetReimbByID(ctx, reimb.ID)
	if err != nil {
		return false, err
	}
	if !existing.IsPending() {
		return false, errorutil.NewConflict("Reimbursment has already been resolved")
	}

	resolution := &domain.Reimbursement{
		ID:            existing.ID,
		ResolverID:    reimb.ResolverID,
		ReimbStatusID: reimb.ReimbStatusID,
	}
	if err := s.reimbs.Resolve(ctx, resolution); err != nil {
		return false, err
	}

	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:     events.EventReimbursementResolved,
		EntityID: existing.ID,
		Payload: events.ReimbursementResolvedPayload{
			AuthorID:   existing.AuthorID,
			ResolverID: *reimb.ResolverID,
			OldStatus:  existing.ReimbStatusID,
			NewStatus:  reimb.ReimbStatusID,
		},
	})
	return true, nil
}
