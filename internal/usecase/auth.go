package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
	pkgAuth "github.com/polkiloo/storefront/internal/pkg/auth"
)

// AuthUseCase registers storefront customers and issues their session tokens.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
	logger *slog.Logger
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(store repository.Store, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy, logger *slog.Logger) *AuthUseCase {
	return &AuthUseCase{users: store.Users(), hasher: hasher, tokens: strategy, logger: logger}
}

// Register creates a customer account and returns its auth token. The email
// receives order notifications, so it must be a bare, parseable address.
func (u *AuthUseCase) Register(ctx context.Context, login, email, password string) (*model.User, string, error) {
	login = strings.TrimSpace(login)
	email, ok := normalizeEmail(email)
	if login == "" || !ok || password == "" {
		u.logger.Debug("register rejected", "login", login)
		return nil, "", domainErrors.ErrInvalidCredentials
	}
	u.logger.Debug("register started", "login", login)

	hash, err := u.hasher.Hash(password)
	if err != nil {
		u.logger.Error("hash password failed", "login", login, "error", err)
		return nil, "", err
	}

	usr, err := u.users.Create(ctx, login, email, hash)
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, "", domainErrors.ErrAlreadyExists
		}
		u.logger.Error("create user failed", "login", login, "error", err)
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		u.logger.Error("issue token failed", "user_id", usr.ID, "error", err)
		return nil, "", err
	}

	u.logger.Debug("register finished", "user_id", usr.ID, "strategy", u.tokens.Name())
	return usr, token, nil
}

// Authenticate validates credentials and returns auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		u.logger.Error("load user failed", "login", login, "error", err)
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		u.logger.Debug("login rejected", "user_id", usr.ID)
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		u.logger.Error("issue token failed", "user_id", usr.ID, "error", err)
		return nil, "", err
	}

	u.logger.Debug("login finished", "user_id", usr.ID)
	return usr, token, nil
}

// ParseToken extracts user ID from provided token.
func (u *AuthUseCase) ParseToken(token string) (int64, error) {
	if token == "" {
		return 0, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches user by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

// normalizeEmail accepts a bare address only, lower-casing it.
func normalizeEmail(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Name != "" || addr.Address != raw {
		return "", false
	}
	return strings.ToLower(addr.Address), true
}
