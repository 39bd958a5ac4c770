package service

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sabajiqurashvili/loan-api/internal/domain"
	"github.com/sabajiqurashvili/loan-api/internal/events"
	"github.com/sabajiqurashvili/loan-api/internal/repository"
	apperrors "github.com/sabajiqurashvili/loan-api/pkg/util"
)

// LoanService implements the owner-facing loan operations. Owners may only
// touch their own loans, and may only edit or delete them while the status is
// still Processing.
type LoanService struct {
	loans      repository.LoanRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewLoanService constructs the service.
func NewLoanService(loans repository.LoanRepository, users repository.UserRepository, dispatcher events.Dispatcher) *LoanService {
	return &LoanService{loans: loans, users: users, dispatcher: dispatcher}
}

// LoanInput carries the owner-editable loan fields.
type LoanInput struct {
	Type         domain.LoanType
	Amount       float64
	Currency     domain.Currency
	PeriodMonths int
}

func (in LoanInput) validate() error {
	if !in.Type.Valid() {
		return apperrors.NewValidationError(fmt.Sprintf("unknown loan type %q", in.Type), nil)
	}
	if in.Amount < domain.MinLoanAmount {
		return apperrors.NewValidationError(fmt.Sprintf("amount must be at least %d", domain.MinLoanAmount), nil)
	}
	if !in.Currency.Valid() {
		return apperrors.NewValidationError(fmt.Sprintf("unknown currency %q", in.Currency), nil)
	}
	if in.PeriodMonths < 1 {
		return apperrors.NewValidationError("loan period must be at least 1 month", nil)
	}
	return nil
}

// Request creates a loan in Processing status for the owner. Blocked users
// may not request loans.
func (s *LoanService) Request(ctx context.Context, ownerID int64, input LoanInput) (*domain.Loan, error) {
	user, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": ownerID})
		}
		return nil, apperrors.MapError(err)
	}
	if user.Blocked {
		return nil, apperrors.NewForbidden("blocked users cannot request loans")
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	loan := &domain.Loan{
		UserID:       ownerID,
		Type:         input.Type,
		Amount:       input.Amount,
		Currency:     input.Currency,
		PeriodMonths: input.PeriodMonths,
		Status:       domain.LoanStatusProcessing,
	}
	if err := s.loans.Create(ctx, loan); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:  events.EventLoanRequested,
		Actor: events.Actor{UserID: ownerID, Role: domain.RoleUser},
		Payload: events.LoanRequestedPayload{
			LoanID:       loan.ID,
			OwnerID:      ownerID,
			LoanType:     loan.Type,
			Amount:       loan.Amount,
			Currency:     loan.Currency,
			PeriodMonths: loan.PeriodMonths,
		},
	})
	return loan, nil
}

// List returns every loan owned by ownerID. An empty slice is a valid result.
func (s *LoanService) List(ctx context.Context, ownerID int64) ([]domain.Loan, error) {
	loans, err := s.loans.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return loans, nil
}

// Update overwrites the editable fields of the owner's loan. The loan must
// exist, belong to the owner and still be Processing; status never changes
// through this path.
func (s *LoanService) Update(ctx context.Context, ownerID, loanID int64, input LoanInput) (*domain.Loan, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	current, err := s.loans.GetOwned(ctx, ownerID, loanID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("loan", map[string]any{"loan_id": loanID})
		}
		return nil, apperrors.MapError(err)
	}
	if current.Status != domain.LoanStatusProcessing {
		return nil, apperrors.NewInvalidState("loan status must be Processing")
	}

	loan := &domain.Loan{
		ID:           loanID,
		UserID:       ownerID,
		Type:         input.Type,
		Amount:       input.Amount,
		Currency:     input.Currency,
		PeriodMonths: input.PeriodMonths,
	}
	updated, err := s.loans.UpdateOwnedProcessing(ctx, loan)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !updated {
		// Lost the race with an accountant status change or delete.
		return nil, apperrors.NewInvalidState("loan status must be Processing")
	}

	s.publish(ctx, events.Event{
		Type:    events.EventLoanUpdated,
		Actor:   events.Actor{UserID: ownerID, Role: domain.RoleUser},
		Payload: events.LoanUpdatedPayload{LoanID: loanID, OwnerID: ownerID},
	})
	return loan, nil
}

// Delete removes the owner's loan while it is still Processing.
func (s *LoanService) Delete(ctx context.Context, ownerID, loanID int64) error {
	current, err := s.loans.GetOwned(ctx, ownerID, loanID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("loan", map[string]any{"loan_id": loanID})
		}
		return apperrors.MapError(err)
	}
	if current.Status != domain.LoanStatusProcessing {
		return apperrors.NewInvalidState("loan status must be Processing")
	}

	deleted, err := s.loans.DeleteOwnedProcessing(ctx, ownerID, loanID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if !deleted {
		return apperrors.NewInvalidState("loan status must be Processing")
	}

	s.publish(ctx, events.Event{
		Type:    events.EventLoanDeleted,
		Actor:   events.Actor{UserID: ownerID, Role: domain.RoleUser},
		Payload: events.LoanDeletedPayload{LoanID: loanID, OwnerID: ownerID},
	})
	return nil
}

func (s *LoanService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
