package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/artem13815/recruiting/pkg/account"
	"github.com/artem13815/recruiting/pkg/company"
)

// AuthUseCase describes login and session behavior.
type AuthUseCase interface {
	Login(ctx context.Context, email, password string) (LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}

// UserSummary is the user object returned on login.
type UserSummary struct {
	ID       uuid.UUID    `json:"id"`
	Name     string       `json:"username"`
	LastName string       `json:"lastName"`
	Email    string       `json:"email"`
	Role     account.Role `json:"role"`
	Phone    string       `json:"phone,omitempty"`
	Company  *string      `json:"company"`
}

type LoginResult struct {
	Tokens TokenPair
	User   UserSummary
}

type authService struct {
	accounts   account.Repository
	companies  company.Repository
	tokens     TokenGenerator
	refresh    RefreshTokenStore
	refreshTTL time.Duration
}

// NewAuthService returns default implementation of AuthUseCase.
func NewAuthService(accounts account.Repository, companies company.Repository, tokens TokenGenerator, refresh RefreshTokenStore, refreshTTL time.Duration) AuthUseCase {
	return &authService{
		accounts:   accounts,
		companies:  companies,
		tokens:     tokens,
		refresh:    refresh,
		refreshTTL: refreshTTL,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	acc, err := s.accounts.GetByEmail(ctx, account.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) != nil {
		return LoginResult{}, ErrInvalidCredentials
	}
	pair, err := s.issue(ctx, acc)
	if err != nil {
		return LoginResult{}, err
	}
	summary := UserSummary{
		ID:       acc.ID,
		Name:     acc.FirstName,
		LastName: acc.LastName,
		Email:    acc.Email,
		Role:     acc.Role,
		Phone:    acc.Phone,
	}
	if acc.Role == account.RoleCompany {
		comp, err := s.companies.GetByAccount(ctx, acc.ID)
		switch {
		case err == nil:
			summary.Company = &comp.Name
		case !errors.Is(err, company.ErrNotFound):
			return LoginResult{}, err
		}
	}
	return LoginResult{Tokens: pair, User: summary}, nil
}

// Refresh rotates the refresh token. The account is re-read so that a role
// changed by hiring shows up in the new access token.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	rt, err := s.refresh.Get(ctx, refreshToken)
	if err != nil {
		return TokenPair{}, err
	}
	acc, err := s.accounts.GetByID(ctx, rt.AccountID)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return TokenPair{}, ErrInvalidRefresh
		}
		return TokenPair{}, err
	}
	if err := s.refresh.Revoke(ctx, refreshToken); err != nil {
		return TokenPair{}, err
	}
	return s.issue(ctx, acc)
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	return s.refresh.Revoke(ctx, refreshToken)
}

func (s *authService) issue(ctx context.Context, acc account.Account) (TokenPair, error) {
	access, exp, err := s.tokens.Generate(ctx, acc)
	if err != nil {
		return TokenPair{}, err
	}
	rt := RefreshToken{
		Token:     uuid.NewString(),
		AccountID: acc.ID,
		ExpiresAt: time.Now().UTC().Add(s.refreshTTL),
	}
	if err := s.refresh.Store(ctx, rt); err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: rt.Token, ExpiresAt: exp}, nil
}
