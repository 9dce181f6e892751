package application

import (
	"errors"
	"strings"
	"testing"
)

func TestArgon2idHasherRoundTrip(t *testing.T) {
	hasher := NewArgon2idHasher()

	hash, err := hasher.Hash("s3nh4-f0rte")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("expected PHC formatted hash, got %q", hash)
	}

	if err := hasher.Verify("s3nh4-f0rte", hash); err != nil {
		t.Fatalf("expected hash to verify, got %v", err)
	}
}

func TestArgon2idHasherRejectsWrongPassword(t *testing.T) {
	hasher := NewArgon2idHasher()

	hash, err := hasher.Hash("correta")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := hasher.Verify("errada", hash); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestArgon2idHasherSaltsEveryHash(t *testing.T) {
	hasher := NewArgon2idHasher()

	first, err := hasher.Hash("mesma-senha")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := hasher.Hash("mesma-senha")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first == second {
		t.Fatal("expected different salts to produce different hashes")
	}
}

func TestArgon2idHasherRejectsMalformedHash(t *testing.T) {
	hasher := NewArgon2idHasher()

	if err := hasher.Verify("qualquer", "not-a-phc-string"); !errors.Is(err, ErrInvalidPasswordHash) {
		t.Fatalf("expected ErrInvalidPasswordHash, got %v", err)
	}
}
