package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sabajiqurashvili/loan-api/internal/domain"
	"github.com/sabajiqurashvili/loan-api/internal/repository"
)

func TestAccountantSeeLoans(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewAccountantService(store.Loans(), store.Users(), nil)
	owner := seedUser(t, store, "saba", domain.RoleUser)
	accountant := seedUser(t, store, "pavle", domain.RoleAccountant)
	first := seedLoan(t, store, owner.ID, domain.LoanStatusProcessing)
	second := seedLoan(t, store, owner.ID, domain.LoanStatusApproved)
	_ = accountant

	loans, err := svc.SeeLoans(context.Background(), owner.ID)
	require.NoError(t, err)
	require.Len(t, loans, 2)
	assert.Equal(t, first.ID, loans[0].ID)
	assert.Equal(t, second.ID, loans[1].ID)
}

func TestAccountantSeeLoansUnknownUser(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewAccountantService(store.Loans(), store.Users(), nil)

	_, err := svc.SeeLoans(context.Background(), 42)
	requireErrorCode(t, err, "NOT_FOUND")
}

func TestAccountantSeeLoansNoLoans(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewAccountantService(store.Loans(), store.Users(), nil)
	owner := seedUser(t, store, "saba", domain.RoleUser)

	// On this path a user without loans is a not-found outcome, unlike the
	// owner-facing listing which returns an empty slice.
	_, err := svc.SeeLoans(context.Background(), owner.ID)
	requireErrorCode(t, err, "NOT_FOUND")
}

func TestAccountantUpdateStatus(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewAccountantService(store.Loans(), store.Users(), nil)
	owner := seedUser(t, store, "saba", domain.RoleUser)
	accountant := seedUser(t, store, "pavle", domain.RoleAccountant)

	transitions := []struct {
		name string
		from domain.LoanStatus
		to   domain.LoanStatus
	}{
		{"approve", domain.LoanStatusProcessing, domain.LoanStatusApproved},
		{"reject", domain.LoanStatusProcessing, domain.LoanStatusRejected},
		{"reopen approved", domain.LoanStatusApproved, domain.LoanStatusProcessing},
		{"flip rejected to approved", domain.LoanStatusRejected, domain.LoanStatusApproved},
	}

	for _, tc := range transitions {
		t.Run(tc.name, func(t *testing.T) {
			loan := seedLoan(t, store, owner.ID, tc.from)

			updated, err := svc.UpdateStatus(context.Background(), accountant.ID, loan.ID, tc.to)
			require.NoError(t, err)
			assert.Equal(t, tc.to, updated.Status)
		})
	}
}

func TestAccountantUpdateStatusUnknownLoan(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewAccountantService(store.Loans(), store.Users(), nil)
	accountant := seedUser(t, store, "pavle", domain.RoleAccountant)

	_, err := svc.UpdateStatus(context.Background(), accountant.ID, 9000, domain.LoanStatusApproved)
	requireErrorCode(t, err, "NOT_FOUND")
}

func TestAccountantUpdateStatusInvalidValue(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewAccountantService(store.Loans(), store.Users(), nil)
	owner := seedUser(t, store, "saba", domain.RoleUser)
	accountant := seedUser(t, store, "pavle", domain.RoleAccountant)
	loan := seedLoan(t, store, owner.ID, domain.LoanStatusProcessing)

	_, err := svc.UpdateStatus(context.Background(), accountant.ID, loan.ID, "Cancelled")
	requireErrorCode(t, err, "VALIDATION_FAILED")
}

func TestAccountantDeleteLoanAnyStatus(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewAccountantService(store.Loans(), store.Users(), nil)
	owner := seedUser(t, store, "saba", domain.RoleUser)
	accountant := seedUser(t, store, "pavle", domain.RoleAccountant)

	for _, status := range []domain.LoanStatus{domain.LoanStatusProcessing, domain.LoanStatusApproved, domain.LoanStatusRejected} {
		t.Run(string(status), func(t *testing.T) {
			loan := seedLoan(t, store, owner.ID, status)

			require.NoError(t, svc.DeleteLoan(context.Background(), accountant.ID, loan.ID))

			_, err := store.Loans().GetByID(context.Background(), loan.ID)
			requireErrorCode(t, err, "NOT_FOUND")
		})
	}
}

func TestAccountantDeleteLoanUnknown(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewAccountantService(store.Loans(), store.Users(), nil)
	accountant := seedUser(t, store, "pavle", domain.RoleAccountant)

	err := svc.DeleteLoan(context.Background(), accountant.ID, 9000)
	requireErrorCode(t, err, "NOT_FOUND")
}

func TestAccountantBlockUser(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewAccountantService(store.Loans(), store.Users(), nil)
	owner := seedUser(t, store, "saba", domain.RoleUser)
	accountant := seedUser(t, store, "pavle", domain.RoleAccountant)

	require.NoError(t, svc.BlockUser(context.Background(), accountant.ID, owner.ID))

	blocked, err := store.Users().GetByID(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.True(t, blocked.Blocked)

	// Blocking twice succeeds silently.
	require.NoError(t, svc.BlockUser(context.Background(), accountant.ID, owner.ID))

	// Blocked users keep their existing loans and can still be reviewed.
	loanSvc := NewLoanService(store.Loans(), store.Users(), nil)
	_, err = loanSvc.Request(context.Background(), owner.ID, validLoanInput())
	requireErrorCode(t, err, "FORBIDDEN")
}

func TestAccountantBlockUnknownUser(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewAccountantService(store.Loans(), store.Users(), nil)
	accountant := seedUser(t, store, "pavle", domain.RoleAccountant)

	err := svc.BlockUser(context.Background(), accountant.ID, 42)
	requireErrorCode(t, err, "NOT_FOUND")
}

func TestLoanLifecycle(t *testing.T) {
	store := repository.NewMemoryStore()
	loanSvc := NewLoanService(store.Loans(), store.Users(), nil)
	accSvc := NewAccountantService(store.Loans(), store.Users(), nil)
	owner := seedUser(t, store, "saba", domain.RoleUser)
	accountant := seedUser(t, store, "pavle", domain.RoleAccountant)

	loan, err := loanSvc.Request(context.Background(), owner.ID, validLoanInput())
	require.NoError(t, err)

	approved, err := accSvc.UpdateStatus(context.Background(), accountant.ID, loan.ID, domain.LoanStatusApproved)
	require.NoError(t, err)
	require.Equal(t, domain.LoanStatusApproved, approved.Status)

	// Once approved, the owner can no longer touch the loan.
	_, err = loanSvc.Update(context.Background(), owner.ID, loan.ID, validLoanInput())
	requireErrorCode(t, err, "INVALID_STATE")
	err = loanSvc.Delete(context.Background(), owner.ID, loan.ID)
	requireErrorCode(t, err, "INVALID_STATE")

	// The accountant still can.
	require.NoError(t, accSvc.DeleteLoan(context.Background(), accountant.ID, loan.ID))

	_, err = accSvc.SeeLoans(context.Background(), owner.ID)
	requireErrorCode(t, err, "NOT_FOUND")
}
