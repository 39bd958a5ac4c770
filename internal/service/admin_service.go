package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/sabajiqurashvili/loan-api/internal/domain"
	"github.com/sabajiqurashvili/loan-api/internal/events"
	"github.com/sabajiqurashvili/loan-api/internal/repository"
	apperrors "github.com/sabajiqurashvili/loan-api/pkg/util"
)

// AdminService implements admin-only operations.
type AdminService struct {
	users       repository.UserRepository
	accountants repository.AccountantRepository
	dispatcher  events.Dispatcher
}

// NewAdminService constructs the service.
func NewAdminService(users repository.UserRepository, accountants repository.AccountantRepository, dispatcher events.Dispatcher) *AdminService {
	return &AdminService{users: users, accountants: accountants, dispatcher: dispatcher}
}

// PromoteToAccountant elevates a user to the Accountant role and appends a
// roster entry with the user's name; both writes happen in one transaction.
// Promoting an existing accountant is a no-op: promoted is false and no
// second roster entry is created.
func (s *AdminService) PromoteToAccountant(ctx context.Context, actorID, userID int64) (acc *domain.Accountant, promoted bool, err error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, false, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return nil, false, apperrors.MapError(err)
	}

	if user.Role == domain.RoleAccountant {
		return nil, false, nil
	}

	acc, err = s.accountants.PromoteUser(ctx, user)
	if err != nil {
		return nil, false, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:    events.EventUserPromoted,
			Actor:   events.Actor{UserID: actorID, Role: domain.RoleAdmin},
			Payload: events.UserPromotedPayload{UserID: userID, AccountantID: acc.ID},
		})
	}
	return acc, true, nil
}
