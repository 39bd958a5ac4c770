package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/sabajiqurashvili/loan-api/internal/api/dto"
	"github.com/sabajiqurashvili/loan-api/internal/auth"
	"github.com/sabajiqurashvili/loan-api/internal/domain"
	"github.com/sabajiqurashvili/loan-api/internal/service"
	apperrors "github.com/sabajiqurashvili/loan-api/pkg/util"
)

// LoansHandler manages owner-facing loan endpoints.
type LoansHandler struct {
	loans *service.LoanService
}

// NewLoansHandler constructs handler.
func NewLoansHandler(loanService *service.LoanService) *LoansHandler {
	return &LoansHandler{loans: loanService}
}

// Request handles POST /api/users/loans.
func (h *LoansHandler) Request(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.LoanRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if msgs := dto.Validate(req); msgs != nil {
		return apperrors.NewValidationError("validation failed", map[string]any{"errors": msgs})
	}

	loan, err := h.loans.Request(c.Context(), principal.User.ID, loanInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewLoanResponse(loan)})
}

// ListMine handles GET /api/users/loans/my.
func (h *LoansHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}

	loans, err := h.loans.List(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewLoanResponses(loans)})
}

// Update handles PUT /api/users/loans/:loanId.
func (h *LoansHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	loanID, err := idParam(c, "loanId")
	if err != nil {
		return err
	}
	var req dto.LoanRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if msgs := dto.Validate(req); msgs != nil {
		return apperrors.NewValidationError("validation failed", map[string]any{"errors": msgs})
	}

	loan, err := h.loans.Update(c.Context(), principal.User.ID, loanID, loanInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewLoanResponse(loan)})
}

// Delete handles DELETE /api/users/loans/:loanId.
func (h *LoansHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	loanID, err := idParam(c, "loanId")
	if err != nil {
		return err
	}

	if err := h.loans.Delete(c.Context(), principal.User.ID, loanID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

func loanInput(req dto.LoanRequest) service.LoanInput {
	return service.LoanInput{
		Type:         domain.LoanType(req.LoanType),
		Amount:       req.Amount,
		Currency:     domain.Currency(req.Currency),
		PeriodMonths: req.PeriodMonths,
	}
}
