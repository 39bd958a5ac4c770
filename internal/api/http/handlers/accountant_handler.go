package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sabajiqurashvili/loan-api/internal/api/dto"
	"github.com/sabajiqurashvili/loan-api/internal/auth"
	"github.com/sabajiqurashvili/loan-api/internal/domain"
	"github.com/sabajiqurashvili/loan-api/internal/service"
	apperrors "github.com/sabajiqurashvili/loan-api/pkg/util"
)

// AccountantHandler manages accountant-facing endpoints.
type AccountantHandler struct {
	accountants *service.AccountantService
}

// NewAccountantHandler constructs handler.
func NewAccountantHandler(accountantService *service.AccountantService) *AccountantHandler {
	return &AccountantHandler{accountants: accountantService}
}

// SeeLoans handles GET /api/accountant/users/:userId/loans.
func (h *AccountantHandler) SeeLoans(c *fiber.Ctx) error {
	userID, err := idParam(c, "userId")
	if err != nil {
		return err
	}

	loans, err := h.accountants.SeeLoans(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewLoanResponses(loans)})
}

// UpdateStatus handles PUT /api/accountant/loans/:loanId.
func (h *AccountantHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("accountant required")
	}
	loanID, err := idParam(c, "loanId")
	if err != nil {
		return err
	}
	var req dto.LoanStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if msgs := dto.Validate(req); msgs != nil {
		return apperrors.NewValidationError("validation failed", map[string]any{"errors": msgs})
	}

	loan, err := h.accountants.UpdateStatus(c.Context(), principal.User.ID, loanID, domain.LoanStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewLoanResponse(loan)})
}

// DeleteLoan handles DELETE /api/accountant/loans/:loanId.
func (h *AccountantHandler) DeleteLoan(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("accountant required")
	}
	loanID, err := idParam(c, "loanId")
	if err != nil {
		return err
	}

	if err := h.accountants.DeleteLoan(c.Context(), principal.User.ID, loanID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// BlockUser handles PUT /api/accountant/users/:userId/block.
func (h *AccountantHandler) BlockUser(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("accountant required")
	}
	userID, err := idParam(c, "userId")
	if err != nil {
		return err
	}

	if err := h.accountants.BlockUser(c.Context(), principal.User.ID, userID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"blocked": true, "user_id": userID}})
}
