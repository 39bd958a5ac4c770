package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/sabajiqurashvili/loan-api/internal/api/dto"
	"github.com/sabajiqurashvili/loan-api/internal/service"
	apperrors "github.com/sabajiqurashvili/loan-api/pkg/util"
)

// UsersHandler exposes registration, login and user lookup endpoints.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// Register handles POST /api/users/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if msgs := dto.Validate(req); msgs != nil {
		return apperrors.NewValidationError("validation failed", map[string]any{"errors": msgs})
	}

	user, err := h.auth.Register(c.Context(), service.RegisterInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Username:     req.Username,
		Age:          req.Age,
		Salary:       req.Salary,
		Password:     req.Password,
		AccountantID: req.AccountantID,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Login handles POST /api/users/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if msgs := dto.Validate(req); msgs != nil {
		return apperrors.NewValidationError("validation failed", map[string]any{"errors": msgs})
	}

	user, token, expiresAt, err := h.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": fiber.Map{
		"user": dto.NewUserResponse(user),
		"auth": dto.AuthResponse{Token: token, Role: user.Role, ExpiresAt: expiresAt},
	}})
}

// GetByID handles GET /api/users/:id.
func (h *UsersHandler) GetByID(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	user, err := h.auth.GetUser(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}
