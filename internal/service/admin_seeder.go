package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/sabajiqurashvili/loan-api/internal/auth"
	"github.com/sabajiqurashvili/loan-api/internal/config"
	"github.com/sabajiqurashvili/loan-api/internal/domain"
	"github.com/sabajiqurashvili/loan-api/internal/repository"
)

// AdminSeeder ensures the bootstrap admin account exists. It runs once at
// startup, before the server accepts traffic, and is idempotent.
type AdminSeeder struct {
	users       repository.UserRepository
	credentials repository.CredentialRepository
	cfg         config.SeedConfig
	bcryptCost  int
}

// NewAdminSeeder builds the seeder.
func NewAdminSeeder(users repository.UserRepository, credentials repository.CredentialRepository, cfg config.SeedConfig, bcryptCost int) *AdminSeeder {
	return &AdminSeeder{users: users, credentials: credentials, cfg: cfg, bcryptCost: bcryptCost}
}

// EnsureAdmin creates the admin user and credential when no credential with
// the configured admin username exists yet.
func (s *AdminSeeder) EnsureAdmin(ctx context.Context) error {
	_, err := s.credentials.GetByUsername(ctx, s.cfg.AdminUsername)
	if err == nil {
		return nil
	}
	if err != pgx.ErrNoRows {
		return err
	}

	hash, err := auth.HashPassword(s.cfg.AdminPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	user := &domain.User{
		FirstName: "Admin",
		LastName:  "Admin",
		Username:  s.cfg.AdminUsername,
		Age:       21,
		Role:      domain.RoleAdmin,
	}
	cred := &domain.Credential{
		Username:     s.cfg.AdminUsername,
		PasswordHash: hash,
	}
	return s.users.CreateWithCredential(ctx, user, cred)
}
