package events

import (
	"time"

	"github.com/sabajiqurashvili/loan-api/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLoanRequested     EventType = "loan_requested"
	EventLoanUpdated       EventType = "loan_updated"
	EventLoanStatusChanged EventType = "loan_status_changed"
	EventLoanDeleted       EventType = "loan_deleted"
	EventUserBlocked       EventType = "user_blocked"
	EventUserPromoted      EventType = "user_promoted"
)

// Actor encapsulates who triggered an event.
type Actor struct {
	UserID int64       `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// LoanRequestedPayload payload.
type LoanRequestedPayload struct {
	LoanID       int64           `json:"loan_id"`
	OwnerID      int64           `json:"owner_id"`
	LoanType     domain.LoanType `json:"loan_type"`
	Amount       float64         `json:"amount"`
	Currency     domain.Currency `json:"currency"`
	PeriodMonths int             `json:"period_months"`
}

// LoanUpdatedPayload payload.
type LoanUpdatedPayload struct {
	LoanID  int64 `json:"loan_id"`
	OwnerID int64 `json:"owner_id"`
}

// LoanStatusChangedPayload payload.
type LoanStatusChangedPayload struct {
	LoanID    int64             `json:"loan_id"`
	OldStatus domain.LoanStatus `json:"old_status"`
	NewStatus domain.LoanStatus `json:"new_status"`
}

// LoanDeletedPayload payload.
type LoanDeletedPayload struct {
	LoanID  int64 `json:"loan_id"`
	OwnerID int64 `json:"owner_id"`
}

// UserBlockedPayload payload.
type UserBlockedPayload struct {
	UserID int64 `json:"user_id"`
}

// UserPromotedPayload payload.
type UserPromotedPayload struct {
	UserID       int64 `json:"user_id"`
	AccountantID int64 `json:"accountant_id"`
}
