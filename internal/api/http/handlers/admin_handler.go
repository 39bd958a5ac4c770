package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/sabajiqurashvili/loan-api/internal/auth"
	"github.com/sabajiqurashvili/loan-api/internal/service"
	apperrors "github.com/sabajiqurashvili/loan-api/pkg/util"
)

// AdminHandler manages admin endpoints.
type AdminHandler struct {
	admin *service.AdminService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: adminService}
}

// Promote handles PUT /api/admin/users/:userId/promote.
func (h *AdminHandler) Promote(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("admin required")
	}
	userID, err := idParam(c, "userId")
	if err != nil {
		return err
	}

	acc, promoted, err := h.admin.PromoteToAccountant(c.Context(), principal.User.ID, userID)
	if err != nil {
		return err
	}
	if !promoted {
		return c.JSON(fiber.Map{"data": fiber.Map{
			"message": fmt.Sprintf("user %d is already an accountant", userID),
		}})
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"message":       fmt.Sprintf("user %d promoted to accountant", userID),
		"accountant_id": acc.ID,
	}})
}
