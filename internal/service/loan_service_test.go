package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sabajiqurashvili/loan-api/internal/domain"
	"github.com/sabajiqurashvili/loan-api/internal/repository"
)

func TestLoanServiceRequest(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewLoanService(store.Loans(), store.Users(), nil)
	owner := seedUser(t, store, "saba", domain.RoleUser)

	loan, err := svc.Request(context.Background(), owner.ID, validLoanInput())
	require.NoError(t, err)
	require.NotNil(t, loan)

	assert.Equal(t, domain.LoanStatusProcessing, loan.Status)
	assert.Equal(t, owner.ID, loan.UserID)
	assert.NotZero(t, loan.ID)

	listed, err := svc.List(context.Background(), owner.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, loan.ID, listed[0].ID)
	assert.Equal(t, loan.Type, listed[0].Type)
	assert.Equal(t, loan.Amount, listed[0].Amount)
	assert.Equal(t, loan.Currency, listed[0].Currency)
	assert.Equal(t, loan.PeriodMonths, listed[0].PeriodMonths)
}

func TestLoanServiceRequestValidation(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewLoanService(store.Loans(), store.Users(), nil)
	owner := seedUser(t, store, "saba", domain.RoleUser)

	cases := []struct {
		name   string
		mutate func(*LoanInput)
	}{
		{"amount below minimum", func(in *LoanInput) { in.Amount = 499.99 }},
		{"zero period", func(in *LoanInput) { in.PeriodMonths = 0 }},
		{"negative period", func(in *LoanInput) { in.PeriodMonths = -3 }},
		{"unknown type", func(in *LoanInput) { in.Type = "Mortgage" }},
		{"unknown currency", func(in *LoanInput) { in.Currency = "JPY" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validLoanInput()
			tc.mutate(&input)

			_, err := svc.Request(context.Background(), owner.ID, input)
			requireErrorCode(t, err, "VALIDATION_FAILED")
		})
	}

	// Failed requests must leave nothing behind.
	listed, err := svc.List(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestLoanServiceRequestBlockedUser(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewLoanService(store.Loans(), store.Users(), nil)
	owner := seedUser(t, store, "saba", domain.RoleUser)
	require.NoError(t, store.Users().SetBlocked(context.Background(), owner.ID, true))

	_, err := svc.Request(context.Background(), owner.ID, validLoanInput())
	requireErrorCode(t, err, "FORBIDDEN")
}

func TestLoanServiceRequestUnknownUser(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewLoanService(store.Loans(), store.Users(), nil)

	_, err := svc.Request(context.Background(), 42, validLoanInput())
	requireErrorCode(t, err, "NOT_FOUND")
}

func TestLoanServiceListEmpty(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewLoanService(store.Loans(), store.Users(), nil)
	owner := seedUser(t, store, "saba", domain.RoleUser)

	// Owners listing their own loans get an empty result, never an error.
	listed, err := svc.List(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.NotNil(t, listed)
	assert.Empty(t, listed)
}

func TestLoanServiceUpdate(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewLoanService(store.Loans(), store.Users(), nil)
	owner := seedUser(t, store, "saba", domain.RoleUser)
	loan := seedLoan(t, store, owner.ID, domain.LoanStatusProcessing)

	input := LoanInput{
		Type:         domain.LoanTypeAuto,
		Amount:       7500,
		Currency:     domain.CurrencyUSD,
		PeriodMonths: 36,
	}
	updated, err := svc.Update(context.Background(), owner.ID, loan.ID, input)
	require.NoError(t, err)

	assert.Equal(t, domain.LoanTypeAuto, updated.Type)
	assert.Equal(t, 7500.0, updated.Amount)
	assert.Equal(t, domain.CurrencyUSD, updated.Currency)
	assert.Equal(t, 36, updated.PeriodMonths)
	assert.Equal(t, domain.LoanStatusProcessing, updated.Status)
}

func TestLoanServiceUpdateRejectsNonProcessing(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewLoanService(store.Loans(), store.Users(), nil)
	owner := seedUser(t, store, "saba", domain.RoleUser)

	for _, status := range []domain.LoanStatus{domain.LoanStatusApproved, domain.LoanStatusRejected} {
		t.Run(string(status), func(t *testing.T) {
			loan := seedLoan(t, store, owner.ID, status)

			_, err := svc.Update(context.Background(), owner.ID, loan.ID, validLoanInput())
			requireErrorCode(t, err, "INVALID_STATE")
		})
	}
}

func TestLoanServiceUpdateForeignLoan(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewLoanService(store.Loans(), store.Users(), nil)
	owner := seedUser(t, store, "saba", domain.RoleUser)
	other := seedUser(t, store, "nino", domain.RoleUser)
	loan := seedLoan(t, store, other.ID, domain.LoanStatusProcessing)

	// Another user's loan looks like it does not exist.
	_, err := svc.Update(context.Background(), owner.ID, loan.ID, validLoanInput())
	requireErrorCode(t, err, "NOT_FOUND")
}

func TestLoanServiceUpdateUnknownLoan(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewLoanService(store.Loans(), store.Users(), nil)
	owner := seedUser(t, store, "saba", domain.RoleUser)

	_, err := svc.Update(context.Background(), owner.ID, 9000, validLoanInput())
	requireErrorCode(t, err, "NOT_FOUND")
}

func TestLoanServiceDelete(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewLoanService(store.Loans(), store.Users(), nil)
	owner := seedUser(t, store, "saba", domain.RoleUser)
	loan := seedLoan(t, store, owner.ID, domain.LoanStatusProcessing)

	require.NoError(t, svc.Delete(context.Background(), owner.ID, loan.ID))

	listed, err := svc.List(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)

	// A second delete finds nothing.
	err = svc.Delete(context.Background(), owner.ID, loan.ID)
	requireErrorCode(t, err, "NOT_FOUND")
}

func TestLoanServiceDeleteRejectsNonProcessing(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewLoanService(store.Loans(), store.Users(), nil)
	owner := seedUser(t, store, "saba", domain.RoleUser)
	loan := seedLoan(t, store, owner.ID, domain.LoanStatusApproved)

	err := svc.Delete(context.Background(), owner.ID, loan.ID)
	requireErrorCode(t, err, "INVALID_STATE")

	// The loan survives the failed delete.
	kept, err := store.Loans().GetByID(context.Background(), loan.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LoanStatusApproved, kept.Status)
}
