package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sabajiqurashvili/loan-api/internal/domain"
)

// UserRepository defines persistence access for registered accounts.
type UserRepository interface {
	// CreateWithCredential inserts the user and its credential row in one
	// transaction. Both succeed or neither does.
	CreateWithCredential(ctx context.Context, user *domain.User, cred *domain.Credential) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	SetBlocked(ctx context.Context, id int64, blocked bool) error
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) CreateWithCredential(ctx context.Context, user *domain.User, cred *domain.Credential) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const userQuery = `
        INSERT INTO users (first_name, last_name, username, age, salary, blocked, role, accountant_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, userQuery,
		user.FirstName,
		user.LastName,
		user.Username,
		user.Age,
		user.Salary,
		user.Blocked,
		user.Role,
		user.AccountantID,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return err
	}

	cred.UserID = user.ID
	const credQuery = `
        INSERT INTO credentials (user_id, username, password_hash)
        VALUES ($1, $2, $3)
        RETURNING id`
	if err := tx.QueryRow(ctx, credQuery,
		cred.UserID,
		cred.Username,
		cred.PasswordHash,
	).Scan(&cred.ID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	const query = `
        SELECT id, first_name, last_name, username, age, salary, blocked, role, accountant_id, created_at, updated_at
        FROM users WHERE id=$1`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `
        SELECT id, first_name, last_name, username, age, salary, blocked, role, accountant_id, created_at, updated_at
        FROM users WHERE username=$1`
	return scanUser(r.pool.QueryRow(ctx, query, username))
}

func (r *userRepository) SetBlocked(ctx context.Context, id int64, blocked bool) error {
	const query = `UPDATE users SET blocked=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, blocked, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Username,
		&user.Age,
		&user.Salary,
		&user.Blocked,
		&user.Role,
		&user.AccountantID,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}
