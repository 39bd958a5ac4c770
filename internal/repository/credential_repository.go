package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sabajiqurashvili/loan-api/internal/domain"
)

// CredentialRepository defines lookup access for login records. Creation goes
// through UserRepository.CreateWithCredential.
type CredentialRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.Credential, error)
}

type credentialRepository struct {
	pool *pgxpool.Pool
}

// NewCredentialRepository returns a Postgres-backed implementation.
func NewCredentialRepository(pool *pgxpool.Pool) CredentialRepository {
	return &credentialRepository{pool: pool}
}

func (r *credentialRepository) GetByUsername(ctx context.Context, username string) (*domain.Credential, error) {
	const query = `
        SELECT id, user_id, username, password_hash
        FROM credentials WHERE username=$1`

	var cred domain.Credential
	if err := r.pool.QueryRow(ctx, query, username).Scan(
		&cred.ID,
		&cred.UserID,
		&cred.Username,
		&cred.PasswordHash,
	); err != nil {
		return nil, err
	}
	return &cred, nil
}
