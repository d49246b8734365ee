package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chirper/social-system/internal/core/ports"
)

// UsersHandler serves the user listing, lookup and mutation routes.
type UsersHandler struct {
	users ports.UsersService
}

func NewUsersHandler(users ports.UsersService) *UsersHandler {
	return &UsersHandler{users: users}
}

type updateUserRequest struct {
	FirstName   *string `json:"firstName,omitempty" validate:"omitempty,max=50"`
	LastName    *string `json:"lastName,omitempty" validate:"omitempty,max=50"`
	DateOfBirth *string `json:"dateOfBirth,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// List returns a page of users, each joined with its auth-service role.
func (h *UsersHandler) List(c echo.Context) error {
	page, limit, err := pageParams(c)
	if err != nil {
		return err
	}

	result, err := h.users.GetUsers(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "users retrieved", result)
}

// Get returns a single user by its public idHash, role included.
func (h *UsersHandler) Get(c echo.Context) error {
	user, err := h.users.GetByIDHash(c.Request().Context(), c.Param("idHash"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "user retrieved", user)
}

// Update applies a partial profile update. Ownership is enforced by the
// service: a non-admin caller can only update its own profile.
func (h *UsersHandler) Update(c echo.Context) error {
	claim, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.Update(c.Request().Context(), claim, ports.UpdateUserInput{
		IDHash:      c.Param("idHash"),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "user updated", user)
}

// Delete soft-deletes a user and cascades a soft-delete over its tweets.
// The route is admin-only; the role guard has already run.
func (h *UsersHandler) Delete(c echo.Context) error {
	user, err := h.users.Delete(c.Request().Context(), c.Param("idHash"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "user deleted", user)
}
