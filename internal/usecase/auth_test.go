package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	pkgAuth "github.com/polkiloo/storefront/internal/pkg/auth"
	testhelpers "github.com/polkiloo/storefront/internal/test"
)

func bg() context.Context { return context.Background() }

func newStrategyStub() testhelpers.StrategyStub {
	return testhelpers.StrategyStub{
		IssueFn: func(userID int64) (string, error) {
			return fmt.Sprintf("token-%d", userID), nil
		},
		ParseFn: func(token string) (int64, error) {
			var id int64
			if _, err := fmt.Sscanf(token, "token-%d", &id); err != nil {
				return 0, pkgAuth.ErrInvalidToken
			}
			return id, nil
		},
	}
}

func newAuthUseCase(store *testhelpers.MemoryStore, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return NewAuthUseCase(store, hasher, strategy, discardLogger())
}

func TestAuthUseCaseRegisterSuccess(t *testing.T) {
	store := newStore()
	uc := newAuthUseCase(store, testhelpers.HasherStub{}, newStrategyStub())

	user, token, err := uc.Register(bg(), "alice", "alice@example.com", "password")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected user to have ID assigned")
	}
	if token != fmt.Sprintf("token-%d", user.ID) {
		t.Fatalf("unexpected token %q", token)
	}
	stored, err := store.Users().GetByLogin(bg(), "alice")
	if err != nil {
		t.Fatalf("expected user in repository: %v", err)
	}
	if stored.PasswordHash != "hash:password" {
		t.Fatalf("password hash not stored: %v", stored.PasswordHash)
	}
	if stored.Email != "alice@example.com" {
		t.Fatalf("email not stored: %v", stored.Email)
	}

	other, _, err := uc.Register(bg(), "eve", " Eve@Example.COM ", "password")
	if err != nil {
		t.Fatalf("register with mixed-case email: %v", err)
	}
	if other.Email != "eve@example.com" {
		t.Fatalf("expected normalized email, got %q", other.Email)
	}
}

func TestAuthUseCaseRegisterDuplicate(t *testing.T) {
	uc := newAuthUseCase(newStore(), testhelpers.HasherStub{}, newStrategyStub())

	if _, _, err := uc.Register(bg(), "bob", "bob@example.com", "secret"); err != nil {
		t.Fatalf("unexpected error on first register: %v", err)
	}
	if _, _, err := uc.Register(bg(), "bob", "bob@example.com", "secret"); err != domainErrors.ErrAlreadyExists {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestAuthUseCaseRegisterValidation(t *testing.T) {
	uc := newAuthUseCase(newStore(), testhelpers.HasherStub{}, newStrategyStub())
	cases := []struct{ login, email, password string }{
		{"", "a@b.c", "password"},
		{"user", "", "password"},
		{"user", "a@b.c", ""},
		{"   ", "a@b.c", "password"},
		{"user", "not-an-email", "password"},
		{"user", "Alice <a@b.c>", "password"},
	}
	for _, tc := range cases {
		if _, _, err := uc.Register(bg(), tc.login, tc.email, tc.password); err != domainErrors.ErrInvalidCredentials {
			t.Fatalf("register(%q,%q,%q): expected invalid credentials error, got %v", tc.login, tc.email, tc.password, err)
		}
	}
}

func TestAuthUseCaseRegisterFailures(t *testing.T) {
	hashErr := errors.New("hash error")
	uc := newAuthUseCase(newStore(), testhelpers.HasherStub{HashFn: func(string) (string, error) {
		return "", hashErr
	}}, newStrategyStub())
	if _, _, err := uc.Register(bg(), "user", "u@example.com", "pass"); !errors.Is(err, hashErr) {
		t.Fatalf("expected hashing error, got %v", err)
	}

	store := newStore()
	dbErr := errors.New("db down")
	store.Fail("Users.Create", dbErr)
	uc = newAuthUseCase(store, testhelpers.HasherStub{}, newStrategyStub())
	if _, _, err := uc.Register(bg(), "user", "u@example.com", "pass"); !errors.Is(err, dbErr) {
		t.Fatalf("expected repository error, got %v", err)
	}

	issueErr := errors.New("cannot issue token")
	uc = newAuthUseCase(newStore(), testhelpers.HasherStub{}, testhelpers.StrategyStub{IssueFn: func(int64) (string, error) {
		return "", issueErr
	}})
	if _, _, err := uc.Register(bg(), "user", "u@example.com", "pass"); !errors.Is(err, issueErr) {
		t.Fatalf("expected token issuing error, got %v", err)
	}
}

func TestAuthUseCaseAuthenticate(t *testing.T) {
	uc := newAuthUseCase(newStore(), testhelpers.HasherStub{}, newStrategyStub())

	user, _, err := uc.Register(bg(), "carol", "carol@example.com", "123456")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, err := uc.Authenticate(bg(), "carol", "bad"); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}
	if _, _, err := uc.Authenticate(bg(), "absent", "123456"); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}
	if _, _, err := uc.Authenticate(bg(), "", "123456"); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}

	_, token, err := uc.Authenticate(bg(), "  carol  ", "123456")
	if err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}
	if token != fmt.Sprintf("token-%d", user.ID) {
		t.Fatalf("unexpected token %q", token)
	}
}

func TestAuthUseCaseAuthenticateRepositoryError(t *testing.T) {
	store := newStore()
	uc := newAuthUseCase(store, testhelpers.HasherStub{}, newStrategyStub())
	if _, _, err := uc.Register(bg(), "user", "u@example.com", "pass"); err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	dbErr := errors.New("storage unavailable")
	store.Fail("Users.GetByLogin", dbErr)
	if _, _, err := uc.Authenticate(bg(), "user", "pass"); !errors.Is(err, dbErr) {
		t.Fatalf("expected repository error, got %v", err)
	}
}

func TestAuthUseCaseParseToken(t *testing.T) {
	uc := newAuthUseCase(newStore(), testhelpers.HasherStub{}, newStrategyStub())

	id, err := uc.ParseToken("token-42")
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected id 42, got %d", id)
	}
	if _, err := uc.ParseToken("bad-token"); err != pkgAuth.ErrInvalidToken {
		t.Fatalf("expected invalid token error, got %v", err)
	}
	if _, err := uc.ParseToken(""); err != pkgAuth.ErrInvalidToken {
		t.Fatalf("expected invalid token error, got %v", err)
	}
}

func TestAuthUseCaseGetByID(t *testing.T) {
	uc := newAuthUseCase(newStore(), testhelpers.HasherStub{}, newStrategyStub())
	user, _, err := uc.Register(bg(), "dave", "dave@example.com", "pwd")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	fetched, err := uc.GetByID(bg(), user.ID)
	if err != nil {
		t.Fatalf("get by id returned error: %v", err)
	}
	if fetched.Login != user.Login {
		t.Fatalf("expected login %q, got %q", user.Login, fetched.Login)
	}
	if _, err := uc.GetByID(bg(), 999); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
