package auth

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestNewBcryptHasher_DefaultCost(t *testing.T) {
	hasher := NewBcryptHasher(0)
	if hasher.cost != bcrypt.DefaultCost {
		t.Fatalf("unexpected cost: %d", hasher.cost)
	}
}

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := hasher.Compare(hash, "secret"); err != nil {
		t.Fatalf("compare: %v", err)
	}
	if err := hasher.Compare(hash, "wrong"); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
	if err := hasher.Compare("not-a-hash", "secret"); err == nil || errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected malformed hash error, got %v", err)
	}
}

func TestBcryptHasher_HashError(t *testing.T) {
	hasher := &BcryptHasher{cost: bcrypt.MaxCost + 1}
	if _, err := hasher.Hash("password"); err == nil {
		t.Fatal("expected hash error for invalid cost")
	}

	hasher = NewBcryptHasher(bcrypt.MinCost)
	if _, err := hasher.Hash(strings.Repeat("x", 80)); err == nil {
		t.Fatal("expected error for password longer than 72 bytes")
	}
}
