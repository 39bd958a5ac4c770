package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/sabajiqurashvili/loan-api/internal/domain"
	"github.com/sabajiqurashvili/loan-api/internal/events"
	"github.com/sabajiqurashvili/loan-api/internal/repository"
	apperrors "github.com/sabajiqurashvili/loan-api/pkg/util"
)

// AccountantService implements the accountant-facing operations: reviewing
// any user's loans, setting loan status without the Processing restriction,
// deleting loans in any status, and blocking users.
type AccountantService struct {
	loans      repository.LoanRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewAccountantService constructs the service.
func NewAccountantService(loans repository.LoanRepository, users repository.UserRepository, dispatcher events.Dispatcher) *AccountantService {
	return &AccountantService{loans: loans, users: users, dispatcher: dispatcher}
}

// SeeLoans returns all loans of the given user. Unlike the owner-facing
// listing, an unknown user and a user without loans are both not-found
// outcomes.
func (s *AccountantService) SeeLoans(ctx context.Context, userID int64) ([]domain.Loan, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return nil, apperrors.MapError(err)
	}

	loans, err := s.loans.ListByOwner(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if len(loans) == 0 {
		return nil, apperrors.NewNotFoundMessage("no loans found")
	}
	return loans, nil
}

// UpdateStatus sets the loan status unconditionally; any transition between
// Processing, Approved and Rejected is allowed on this path.
func (s *AccountantService) UpdateStatus(ctx context.Context, actorID, loanID int64, status domain.LoanStatus) (*domain.Loan, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("unknown loan status", nil)
	}

	current, err := s.loans.GetByID(ctx, loanID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("loan", map[string]any{"loan_id": loanID})
		}
		return nil, apperrors.MapError(err)
	}

	loan, err := s.loans.UpdateStatus(ctx, loanID, status)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("loan", map[string]any{"loan_id": loanID})
		}
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:  events.EventLoanStatusChanged,
		Actor: events.Actor{UserID: actorID, Role: domain.RoleAccountant},
		Payload: events.LoanStatusChangedPayload{
			LoanID:    loanID,
			OldStatus: current.Status,
			NewStatus: loan.Status,
		},
	})
	return loan, nil
}

// DeleteLoan removes the loan regardless of its status.
func (s *AccountantService) DeleteLoan(ctx context.Context, actorID, loanID int64) error {
	loan, err := s.loans.GetByID(ctx, loanID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("loan", map[string]any{"loan_id": loanID})
		}
		return apperrors.MapError(err)
	}

	if err := s.loans.Delete(ctx, loanID); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("loan", map[string]any{"loan_id": loanID})
		}
		return apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:    events.EventLoanDeleted,
		Actor:   events.Actor{UserID: actorID, Role: domain.RoleAccountant},
		Payload: events.LoanDeletedPayload{LoanID: loanID, OwnerID: loan.UserID},
	})
	return nil
}

// BlockUser sets the blocked flag. Blocking an already-blocked user succeeds
// silently.
func (s *AccountantService) BlockUser(ctx context.Context, actorID, userID int64) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return apperrors.MapError(err)
	}

	if err := s.users.SetBlocked(ctx, userID, true); err != nil {
		return apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:    events.EventUserBlocked,
		Actor:   events.Actor{UserID: actorID, Role: domain.RoleAccountant},
		Payload: events.UserBlockedPayload{UserID: userID},
	})
	return nil
}

func (s *AccountantService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
