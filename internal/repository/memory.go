package repository

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sabajiqurashvili/loan-api/internal/domain"
)

var errDuplicateUsername = errors.New("username already exists")

// MemoryStore is an in-memory implementation of every repository interface,
// sharing one lock and one set of tables the way the database does. It backs
// tests; error conventions mirror the Postgres implementations (pgx.ErrNoRows
// for absent rows).
type MemoryStore struct {
	mu sync.Mutex

	users       map[int64]domain.User
	credentials map[string]domain.Credential
	loans       map[int64]domain.Loan
	accountants map[int64]domain.Accountant

	nextUserID       int64
	nextCredentialID int64
	nextLoanID       int64
	nextAccountantID int64
}

// NewMemoryStore builds an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:       make(map[int64]domain.User),
		credentials: make(map[string]domain.Credential),
		loans:       make(map[int64]domain.Loan),
		accountants: make(map[int64]domain.Accountant),
	}
}

// Users returns the UserRepository view of the store.
func (s *MemoryStore) Users() UserRepository { return &memoryUsers{s} }

// Credentials returns the CredentialRepository view of the store.
func (s *MemoryStore) Credentials() CredentialRepository { return &memoryCredentials{s} }

// Accountants returns the AccountantRepository view of the store.
func (s *MemoryStore) Accountants() AccountantRepository { return &memoryAccountants{s} }

// Loans returns the LoanRepository view of the store.
func (s *MemoryStore) Loans() LoanRepository { return &memoryLoans{s} }

type memoryUsers struct{ store *MemoryStore }

func (r *memoryUsers) CreateWithCredential(_ context.Context, user *domain.User, cred *domain.Credential) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.credentials[cred.Username]; exists {
		return errDuplicateUsername
	}

	s.nextUserID++
	now := time.Now()
	user.ID = s.nextUserID
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = *user

	s.nextCredentialID++
	cred.ID = s.nextCredentialID
	cred.UserID = user.ID
	s.credentials[cred.Username] = *cred
	return nil
}

func (r *memoryUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *memoryUsers) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryUsers) SetBlocked(_ context.Context, id int64, blocked bool) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Blocked = blocked
	user.UpdatedAt = time.Now()
	s.users[id] = user
	return nil
}

type memoryCredentials struct{ store *MemoryStore }

func (r *memoryCredentials) GetByUsername(_ context.Context, username string) (*domain.Credential, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	cred, ok := s.credentials[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &cred, nil
}

type memoryAccountants struct{ store *MemoryStore }

func (r *memoryAccountants) GetByID(_ context.Context, id int64) (*domain.Accountant, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accountants[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &acc, nil
}

func (r *memoryAccountants) PromoteUser(_ context.Context, user *domain.User) (*domain.Accountant, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.users[user.ID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	stored.Role = domain.RoleAccountant
	stored.UpdatedAt = time.Now()
	s.users[stored.ID] = stored

	s.nextAccountantID++
	acc := domain.Accountant{
		ID:        s.nextAccountantID,
		FirstName: stored.FirstName,
		LastName:  stored.LastName,
		CreatedAt: time.Now(),
	}
	s.accountants[acc.ID] = acc
	return &acc, nil
}

// AccountantCount reports roster size; used by idempotence tests.
func (s *MemoryStore) AccountantCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.accountants)
}

type memoryLoans struct{ store *MemoryStore }

func (r *memoryLoans) Create(_ context.Context, loan *domain.Loan) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextLoanID++
	now := time.Now()
	loan.ID = s.nextLoanID
	loan.CreatedAt = now
	loan.UpdatedAt = now
	s.loans[loan.ID] = *loan
	return nil
}

func (r *memoryLoans) GetByID(_ context.Context, id int64) (*domain.Loan, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	loan, ok := s.loans[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &loan, nil
}

func (r *memoryLoans) GetOwned(_ context.Context, ownerID, id int64) (*domain.Loan, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	loan, ok := s.loans[id]
	if !ok || loan.UserID != ownerID {
		return nil, pgx.ErrNoRows
	}
	return &loan, nil
}

func (r *memoryLoans) ListByOwner(_ context.Context, ownerID int64) ([]domain.Loan, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	loans := make([]domain.Loan, 0)
	for _, loan := range s.loans {
		if loan.UserID == ownerID {
			loans = append(loans, loan)
		}
	}
	sort.Slice(loans, func(i, j int) bool { return loans[i].ID < loans[j].ID })
	return loans, nil
}

func (r *memoryLoans) UpdateOwnedProcessing(_ context.Context, loan *domain.Loan) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.loans[loan.ID]
	if !ok || stored.UserID != loan.UserID || stored.Status != domain.LoanStatusProcessing {
		return false, nil
	}
	stored.Type = loan.Type
	stored.Amount = loan.Amount
	stored.Currency = loan.Currency
	stored.PeriodMonths = loan.PeriodMonths
	stored.UpdatedAt = time.Now()
	s.loans[stored.ID] = stored
	*loan = stored
	return true, nil
}

func (r *memoryLoans) DeleteOwnedProcessing(_ context.Context, ownerID, id int64) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	loan, ok := s.loans[id]
	if !ok || loan.UserID != ownerID || loan.Status != domain.LoanStatusProcessing {
		return false, nil
	}
	delete(s.loans, id)
	return true, nil
}

func (r *memoryLoans) UpdateStatus(_ context.Context, id int64, status domain.LoanStatus) (*domain.Loan, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	loan, ok := s.loans[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	loan.Status = status
	loan.UpdatedAt = time.Now()
	s.loans[id] = loan
	return &loan, nil
}

func (r *memoryLoans) Delete(_ context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.loans[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.loans, id)
	return nil
}
