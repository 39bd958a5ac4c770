package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sabajiqurashvili/loan-api/internal/auth"
	"github.com/sabajiqurashvili/loan-api/internal/config"
	"github.com/sabajiqurashvili/loan-api/internal/domain"
	"github.com/sabajiqurashvili/loan-api/internal/repository"
	apperrors "github.com/sabajiqurashvili/loan-api/pkg/util"
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users       repository.UserRepository
	credentials repository.CredentialRepository
	accountants repository.AccountantRepository
	tokenMgr    *auth.TokenManager
	bcryptCost  int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo       repository.UserRepository
	CredentialRepo repository.CredentialRepository
	AccountantRepo repository.AccountantRepository
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:       deps.UserRepo,
		credentials: deps.CredentialRepo,
		accountants: deps.AccountantRepo,
		tokenMgr:    auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL()),
		bcryptCost:  cfg.Auth.BcryptCost,
	}
}

// RegisterInput carries the registration payload.
type RegisterInput struct {
	FirstName    string
	LastName     string
	Username     string
	Age          int
	Salary       float64
	Password     string
	AccountantID *int64
}

// Register creates a new user with role User and its credential record. The
// username must be unique; a referenced accountant must exist.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if _, err := s.credentials.GetByUsername(ctx, input.Username); err == nil {
		return nil, apperrors.NewConflict(fmt.Sprintf("username %s is already taken", input.Username), nil)
	} else if err != pgx.ErrNoRows {
		return nil, apperrors.MapError(err)
	}

	if input.AccountantID != nil {
		if _, err := s.accountants.GetByID(ctx, *input.AccountantID); err != nil {
			if err == pgx.ErrNoRows {
				return nil, apperrors.NewNotFound("accountant", map[string]any{"accountant_id": *input.AccountantID})
			}
			return nil, apperrors.MapError(err)
		}
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	user := &domain.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Username:     input.Username,
		Age:          input.Age,
		Salary:       input.Salary,
		Role:         domain.RoleUser,
		AccountantID: input.AccountantID,
	}
	cred := &domain.Credential{
		Username:     input.Username,
		PasswordHash: hash,
	}
	if err := s.users.CreateWithCredential(ctx, user, cred); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Login verifies credentials and issues a bearer token carrying the user's
// current role.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, time.Time, error) {
	cred, err := s.credentials.GetByUsername(ctx, username)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewNotFound("user", map[string]any{"username": username})
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	if err := auth.ComparePassword(cred.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	user, err := s.users.GetByID(ctx, cred.UserID)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	token, expiresAt, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return user, token, expiresAt, nil
}

// GetUser fetches a user by id.
func (s *AuthService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
