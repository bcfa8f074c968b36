package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/expensedesk/reimbursement-service/internal/api/dto"
	"github.com/expensedesk/reimbursement-service/internal/domain"
)

// UserService is the user workflow used by UsersHandler.
type UserService interface {
	GetAllUsers(ctx context.Context) ([]*domain.User, error)
	GetUserByUniqueKey(ctx context.Context, lookup domain.Lookup) (*domain.User, error)
	GetUsersByRole(ctx context.Context, roleID int) ([]*domain.User, error)
	AddNewUser(ctx context.Context, user *domain.User) (bool, error)
	UpdateUser(ctx context.Context, user *domain.User) (bool, error)
	DeleteUser(ctx context.Context, lookup domain.Lookup) (bool, error)
}

// UsersHandler exposes user administration endpoints.
type UsersHandler struct {
	users UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.GetAllUsers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponses(users))
}

// Search handles GET /users/search?<key>=<value>.
func (h *UsersHandler) Search(c *fiber.Ctx) error {
	user, err := h.users.GetUserByUniqueKey(c.UserContext(), firstQueryLookup(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// ByRole handles GET /users/role/:roleId.
func (h *UsersHandler) ByRole(c *fiber.Ctx) error {
	roleID, err := intParam(c, "roleId")
	if err != nil {
		return err
	}
	users, err := h.users.GetUsersByRole(c.UserContext(), roleID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponses(users))
}

// Get handles GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.GetUserByUniqueKey(c.UserContext(), domain.Lookup{Key: domain.LookupKeyID, Value: c.Params("id")})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// Create handles POST /users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.UserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ok, err := h.users.AddNewUser(c.UserContext(), req.ToDomain())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(ok)
}

// Update handles PUT /users.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.UserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ok, err := h.users.UpdateUser(c.UserContext(), req.ToDomain())
	if err != nil {
		return err
	}
	return c.JSON(ok)
}

// Delete handles DELETE /users?id=<id>.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	if _, err := h.users.DeleteUser(c.UserContext(), firstQueryLookup(c)); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
