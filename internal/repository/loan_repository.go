package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sabajiqurashvili/loan-api/internal/domain"
)

// LoanRepository encapsulates loan persistence. Owner-facing mutations are
// conditional single statements (WHERE status='Processing') so the status
// check and the write cannot race with a concurrent accountant update.
type LoanRepository interface {
	Create(ctx context.Context, loan *domain.Loan) error
	GetByID(ctx context.Context, id int64) (*domain.Loan, error)
	GetOwned(ctx context.Context, ownerID, id int64) (*domain.Loan, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Loan, error)
	// UpdateOwnedProcessing overwrites type/amount/currency/period of the
	// owner's loan if it is still Processing. Returns false when no row
	// matched, without distinguishing absence from a non-Processing status.
	UpdateOwnedProcessing(ctx context.Context, loan *domain.Loan) (bool, error)
	// DeleteOwnedProcessing removes the owner's loan if it is still
	// Processing. Returns false when no row matched.
	DeleteOwnedProcessing(ctx context.Context, ownerID, id int64) (bool, error)
	// UpdateStatus sets the status unconditionally (accountant path).
	UpdateStatus(ctx context.Context, id int64, status domain.LoanStatus) (*domain.Loan, error)
	// Delete removes the loan in any status (accountant path).
	Delete(ctx context.Context, id int64) error
}

type loanRepository struct {
	pool *pgxpool.Pool
}

// NewLoanRepository instantiates repository.
func NewLoanRepository(pool *pgxpool.Pool) LoanRepository {
	return &loanRepository{pool: pool}
}

const loanColumns = `id, user_id, loan_type, amount, currency, period_months, status, created_at, updated_at`

func (r *loanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	const query = `
        INSERT INTO loans (user_id, loan_type, amount, currency, period_months, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		loan.UserID,
		loan.Type,
		loan.Amount,
		loan.Currency,
		loan.PeriodMonths,
		loan.Status,
	).Scan(&loan.ID, &loan.CreatedAt, &loan.UpdatedAt)
}

func (r *loanRepository) GetByID(ctx context.Context, id int64) (*domain.Loan, error) {
	const query = `SELECT ` + loanColumns + ` FROM loans WHERE id=$1`
	return scanLoan(r.pool.QueryRow(ctx, query, id))
}

func (r *loanRepository) GetOwned(ctx context.Context, ownerID, id int64) (*domain.Loan, error) {
	const query = `SELECT ` + loanColumns + ` FROM loans WHERE id=$1 AND user_id=$2`
	return scanLoan(r.pool.QueryRow(ctx, query, id, ownerID))
}

func (r *loanRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Loan, error) {
	const query = `SELECT ` + loanColumns + ` FROM loans WHERE user_id=$1 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	loans := make([]domain.Loan, 0)
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, *loan)
	}
	return loans, rows.Err()
}

func (r *loanRepository) UpdateOwnedProcessing(ctx context.Context, loan *domain.Loan) (bool, error) {
	const query = `
        UPDATE loans SET loan_type=$1, amount=$2, currency=$3, period_months=$4, updated_at=NOW()
        WHERE id=$5 AND user_id=$6 AND status=$7
        RETURNING ` + loanColumns
	updated, err := scanLoan(r.pool.QueryRow(ctx, query,
		loan.Type,
		loan.Amount,
		loan.Currency,
		loan.PeriodMonths,
		loan.ID,
		loan.UserID,
		domain.LoanStatusProcessing,
	))
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	*loan = *updated
	return true, nil
}

func (r *loanRepository) DeleteOwnedProcessing(ctx context.Context, ownerID, id int64) (bool, error) {
	const query = `DELETE FROM loans WHERE id=$1 AND user_id=$2 AND status=$3`
	cmd, err := r.pool.Exec(ctx, query, id, ownerID, domain.LoanStatusProcessing)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *loanRepository) UpdateStatus(ctx context.Context, id int64, status domain.LoanStatus) (*domain.Loan, error) {
	const query = `
        UPDATE loans SET status=$1, updated_at=NOW()
        WHERE id=$2
        RETURNING ` + loanColumns
	return scanLoan(r.pool.QueryRow(ctx, query, status, id))
}

func (r *loanRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM loans WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanLoan(row pgx.Row) (*domain.Loan, error) {
	var loan domain.Loan
	if err := row.Scan(
		&loan.ID,
		&loan.UserID,
		&loan.Type,
		&loan.Amount,
		&loan.Currency,
		&loan.PeriodMonths,
		&loan.Status,
		&loan.CreatedAt,
		&loan.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &loan, nil
}
