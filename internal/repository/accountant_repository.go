package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sabajiqurashvili/loan-api/internal/domain"
)

// AccountantRepository defines persistence access for the accountant roster.
type AccountantRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Accountant, error)
	// PromoteUser flips the user's role to Accountant and appends a roster
	// entry mirroring the user's name, in one transaction.
	PromoteUser(ctx context.Context, user *domain.User) (*domain.Accountant, error)
}

type accountantRepository struct {
	pool *pgxpool.Pool
}

// NewAccountantRepository returns a Postgres-backed implementation.
func NewAccountantRepository(pool *pgxpool.Pool) AccountantRepository {
	return &accountantRepository{pool: pool}
}

func (r *accountantRepository) GetByID(ctx context.Context, id int64) (*domain.Accountant, error) {
	const query = `
        SELECT id, first_name, last_name, created_at
        FROM accountants WHERE id=$1`

	var acc domain.Accountant
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&acc.ID,
		&acc.FirstName,
		&acc.LastName,
		&acc.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &acc, nil
}

func (r *accountantRepository) PromoteUser(ctx context.Context, user *domain.User) (*domain.Accountant, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const roleQuery = `UPDATE users SET role=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := tx.Exec(ctx, roleQuery, domain.RoleAccountant, user.ID)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, pgx.ErrNoRows
	}

	acc := &domain.Accountant{
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
	const insertQuery = `
        INSERT INTO accountants (first_name, last_name)
        VALUES ($1, $2)
        RETURNING id, created_at`
	if err := tx.QueryRow(ctx, insertQuery, acc.FirstName, acc.LastName).Scan(&acc.ID, &acc.CreatedAt); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return acc, nil
}
