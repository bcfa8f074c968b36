package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/expensedesk/reimbursement-service/internal/api/dto"
	"github.com/expensedesk/reimbursement-service/internal/auth"
	"github.com/expensedesk/reimbursement-service/internal/domain"
	apperrors "github.com/expensedesk/reimbursement-service/pkg/util/errorutil"
)

// ReimbursementService is the reimbursement workflow used by
// ReimbursementsHandler.
type ReimbursementService interface {
	GetAllReimbs(ctx context.Context) ([]*domain.Reimbursement, error)
	GetReimbByUniqueKey(ctx context.Context, lookup domain.Lookup) (*domain.Reimbursement, error)
	GetReimbsByAuthorID(ctx context.Context, lookup domain.Lookup) ([]*domain.Reimbursement, error)
	AddNewReimb(ctx context.Context, reimb *domain.Reimbursement) (bool, error)
	UpdateReimb(ctx context.Context, reimb *domain.Reimbursement) (bool, error)
	ResolveReimb(ctx context.Context, reimb *domain.Reimbursement) (bool, error)
}

// ReimbursementsHandler exposes reimbursement endpoints. Employees only see
// and touch their own requests; financial managers see everything.
type ReimbursementsHandler struct {
	reimbs ReimbursementService
}

// NewReimbursementsHandler constructs handler.
func NewReimbursementsHandler(reimbs ReimbursementService) *ReimbursementsHandler {
	return &ReimbursementsHandler{reimbs: reimbs}
}

// List handles GET /reimbursements.
func (h *ReimbursementsHandler) List(c *fiber.Ctx) error {
	reimbs, err := h.reimbs.GetAllReimbs(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewReimbursements(reimbs))
}

// Search handles GET /reimbursements/search?<key>=<value>.
func (h *ReimbursementsHandler) Search(c *fiber.Ctx) error {
	reimb, err := h.reimbs.GetReimbByUniqueKey(c.UserContext(), firstQueryLookup(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewReimbursement(reimb))
}

// ByAuthor handles GET /reimbursements/author?id=<id>.
func (h *ReimbursementsHandler) ByAuthor(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	lookup := firstQueryLookup(c)
	if !isManager(principal) && lookup.Value != strconv.Itoa(principal.ID) {
		return apperrors.NewForbidden("")
	}

	reimbs, err := h.reimbs.GetReimbsByAuthorID(c.UserContext(), lookup)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewReimbursements(reimbs))
}

// Get handles GET /reimbursements/:id.
func (h *ReimbursementsHandler) Get(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	reimb, err := h.reimbs.GetReimbByUniqueKey(c.UserContext(), domain.Lookup{Key: domain.LookupKeyID, Value: c.Params("id")})
	if err != nil {
		return err
	}
	if !isManager(principal) && reimb.AuthorID != principal.ID {
		return apperrors.NewForbidden("")
	}
	return c.JSON(dto.NewReimbursement(reimb))
}

// Create handles POST /reimbursements. The author defaults to the caller.
func (h *ReimbursementsHandler) Create(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.Reimbursement
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.AuthorID == 0 {
		req.AuthorID = principal.ID
	}
	if !isManager(principal) && req.AuthorID != principal.ID {
		return apperrors.NewForbidden("")
	}

	ok, err := h.reimbs.AddNewReimb(c.UserContext(), req.ToDomain())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(ok)
}

// Update handles PUT /reimbursements.
func (h *ReimbursementsHandler) Update(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.Reimbursement
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if !isManager(principal) && req.AuthorID != principal.ID {
		return apperrors.NewForbidden("")
	}

	ok, err := h.reimbs.UpdateReimb(c.UserContext(), req.ToDomain())
	if err != nil {
		return err
	}
	return c.JSON(ok)
}

// Resolve handles PATCH /reimbursements/resolve. The resolver defaults to
// the caller.
func (h *ReimbursementsHandler) Resolve(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.Reimbursement
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.ResolverID == nil || *req.ResolverID == 0 {
		id := principal.ID
		req.ResolverID = &id
	}

	ok, err := h.reimbs.ResolveReimb(c.UserContext(), req.ToDomain())
	if err != nil {
		return err
	}
	return c.JSON(ok)
}

func requirePrincipal(c *fiber.Ctx) (domain.Principal, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return domain.Principal{}, apperrors.NewUnauthorized(auth.MsgNoSession)
	}
	return principal, nil
}

func isManager(p domain.Principal) bool {
	return p.HasRole(domain.RoleFinancialManager)
}
