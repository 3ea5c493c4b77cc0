package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/polvex/pharmatrack/internal/domain/errors"
	"github.com/polvex/pharmatrack/internal/domain/model"
	"github.com/polvex/pharmatrack/internal/domain/repository"
	pkgAuth "github.com/polvex/pharmatrack/internal/pkg/auth"
)

// AuthUseCase handles staff account lifecycle and token management.
type AuthUseCase struct {
	staff  repository.StaffRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(staff repository.StaffRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{staff: staff, hasher: hasher, tokens: strategy}
}

// Register creates a new staff account and returns an auth token.
func (u *AuthUseCase) Register(ctx context.Context, login, password string, role model.Role) (*model.Staff, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}
	if !model.ValidRole(role) {
		return nil, "", domainErrors.ErrValidation
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	account, err := u.staff.Create(ctx, login, hash, role)
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, "", domainErrors.ErrAlreadyExists
		}
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(account.ID, string(account.Role))
	if err != nil {
		return nil, "", err
	}

	return account, token, nil
}

// Authenticate validates credentials and returns an auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, login, password string) (*model.Staff, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	account, err := u.staff.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(account.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(account.ID, string(account.Role))
	if err != nil {
		return nil, "", err
	}

	return account, token, nil
}

// ParseToken resolves the acting staff member from the provided token.
func (u *AuthUseCase) ParseToken(token string) (model.Actor, error) {
	if token == "" {
		return model.Actor{}, pkgAuth.ErrInvalidToken
	}
	staffID, role, err := u.tokens.ParseToken(token)
	if err != nil {
		return model.Actor{}, err
	}
	if !model.ValidRole(model.Role(role)) {
		return model.Actor{}, pkgAuth.ErrInvalidToken
	}
	return model.Actor{ID: staffID, Role: model.Role(role)}, nil
}

// GetByID fetches a staff account by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.Staff, error) {
	return u.staff.GetByID(ctx, id)
}
