package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chirper/social-system/internal/core/domain"
	"github.com/chirper/social-system/internal/core/ports"
)

// AccountHandler serves the public registration and login routes.
type AccountHandler struct {
	account ports.AccountService
}

func NewAccountHandler(account ports.AccountService) *AccountHandler {
	return &AccountHandler{account: account}
}

type registerRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=30,alphanum"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	FirstName   string `json:"firstName" validate:"required,max=50"`
	LastName    string `json:"lastName" validate:"required,max=50"`
	DateOfBirth string `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
}

type registerResponse struct {
	User *domain.User       `json:"user"`
	Auth *domain.Credential `json:"auth"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	User  domain.User `json:"user"`
	Role  string      `json:"role"`
	Token string      `json:"token"`
}

// Register creates the user profile and its credential as a unit. Role is
// never accepted from the request body; every self-registration gets the
// default user role. Admins are seeded out of band.
func (h *AccountHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.account.Register(c.Request().Context(), ports.RegisterInput{
		Username:    req.Username,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, "user registered", registerResponse{
		User: result.User,
		Auth: result.Auth,
	})
}

// Login authenticates a user and returns the issued token.
func (h *AccountHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.account.Login(c.Request().Context(), ports.LoginUserInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "login successful", loginResponse{
		User:  result.User,
		Role:  result.Role,
		Token: result.Token,
	})
}
