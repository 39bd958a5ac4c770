package dto

import (
	"time"

	"github.com/sabajiqurashvili/loan-api/internal/domain"
)

// LoanRequest payload for requesting or editing a loan.
type LoanRequest struct {
	LoanType     string  `json:"loan_type" validate:"required,oneof=QuickLoan AutoLoan Installment"`
	Amount       float64 `json:"amount" validate:"required,gte=500"`
	Currency     string  `json:"currency" validate:"required,oneof=GEL USD EUR"`
	PeriodMonths int     `json:"period_months" validate:"required,gte=1"`
}

// LoanStatusRequest payload for the accountant status update.
type LoanStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Processing Approved Rejected"`
}

// LoanResponse is the public view of a loan.
type LoanResponse struct {
	ID           int64             `json:"id"`
	UserID       int64             `json:"user_id"`
	LoanType     domain.LoanType   `json:"loan_type"`
	Amount       float64           `json:"amount"`
	Currency     domain.Currency   `json:"currency"`
	PeriodMonths int               `json:"period_months"`
	Status       domain.LoanStatus `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// NewLoanResponse maps the domain model.
func NewLoanResponse(loan *domain.Loan) LoanResponse {
	return LoanResponse{
		ID:           loan.ID,
		UserID:       loan.UserID,
		LoanType:     loan.Type,
		Amount:       loan.Amount,
		Currency:     loan.Currency,
		PeriodMonths: loan.PeriodMonths,
		Status:       loan.Status,
		CreatedAt:    loan.CreatedAt,
		UpdatedAt:    loan.UpdatedAt,
	}
}

// NewLoanResponses maps a slice of domain loans.
func NewLoanResponses(loans []domain.Loan) []LoanResponse {
	out := make([]LoanResponse, 0, len(loans))
	for i := range loans {
		out = append(out, NewLoanResponse(&loans[i]))
	}
	return out
}
