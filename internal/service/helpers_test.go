package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sabajiqurashvili/loan-api/internal/domain"
	"github.com/sabajiqurashvili/loan-api/internal/repository"
	apperrors "github.com/sabajiqurashvili/loan-api/pkg/util"
)

func seedUser(t *testing.T, store *repository.MemoryStore, username string, role domain.Role) *domain.User {
	t.Helper()

	user := &domain.User{
		FirstName: "Test",
		LastName:  "User",
		Username:  username,
		Age:       30,
		Salary:    2500,
		Role:      role,
	}
	cred := &domain.Credential{Username: username, PasswordHash: "x"}
	require.NoError(t, store.Users().CreateWithCredential(context.Background(), user, cred))
	return user
}

func seedLoan(t *testing.T, store *repository.MemoryStore, ownerID int64, status domain.LoanStatus) *domain.Loan {
	t.Helper()

	loan := &domain.Loan{
		UserID:       ownerID,
		Type:         domain.LoanTypeQuick,
		Amount:       1000,
		Currency:     domain.CurrencyGEL,
		PeriodMonths: 12,
		Status:       domain.LoanStatusProcessing,
	}
	require.NoError(t, store.Loans().Create(context.Background(), loan))
	if status != domain.LoanStatusProcessing {
		updated, err := store.Loans().UpdateStatus(context.Background(), loan.ID, status)
		require.NoError(t, err)
		loan = updated
	}
	return loan
}

func requireErrorCode(t *testing.T, err error, code string) {
	t.Helper()

	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	require.Equal(t, code, domainErr.Code, "error: %v", err)
}

func validLoanInput() LoanInput {
	return LoanInput{
		Type:         domain.LoanTypeQuick,
		Amount:       1000,
		Currency:     domain.CurrencyGEL,
		PeriodMonths: 12,
	}
}
