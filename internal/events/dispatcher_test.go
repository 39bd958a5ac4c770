package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sabajiqurashvili/loan-api/internal/domain"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var received []Event
	d.Subscribe(EventLoanRequested, func(_ context.Context, e Event) error {
		received = append(received, e)
		return nil
	})

	err := d.Publish(context.Background(), Event{
		Type:    EventLoanRequested,
		Actor:   Actor{UserID: 1, Role: domain.RoleUser},
		Payload: LoanRequestedPayload{LoanID: 10, OwnerID: 1},
	})
	require.NoError(t, err)

	require.Len(t, received, 1)
	assert.NotEmpty(t, received[0].ID)
	assert.False(t, received[0].Timestamp.IsZero())
	assert.Equal(t, int64(1), received[0].Actor.UserID)
}

func TestDispatcherIgnoresUnrelatedTypes(t *testing.T) {
	d := NewInMemoryDispatcher()

	calls := 0
	d.Subscribe(EventUserBlocked, func(context.Context, Event) error {
		calls++
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventLoanDeleted}))
	assert.Zero(t, calls)
}

func TestDispatcherHandlerErrorDoesNotStopDelivery(t *testing.T) {
	d := NewInMemoryDispatcher()

	d.Subscribe(EventUserPromoted, func(context.Context, Event) error {
		return errors.New("boom")
	})
	delivered := false
	d.Subscribe(EventUserPromoted, func(context.Context, Event) error {
		delivered = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventUserPromoted}))
	assert.True(t, delivered)
}
