package auth

import (
	"errors"
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("cantiere2024!")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if hash == "cantiere2024!" {
		t.Fatal("HashPassword() returned the plaintext password")
	}

	if err := CheckPassword("cantiere2024!", hash); err != nil {
		t.Errorf("CheckPassword() with correct password: %v", err)
	}

	if err := CheckPassword("wrong-password", hash); !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("CheckPassword() with wrong password = %v, want ErrInvalidPassword", err)
	}
}

func TestHashPasswordRejectsShortPasswords(t *testing.T) {
	if _, err := HashPassword("breve"); err == nil {
		t.Error("HashPassword() accepted a password shorter than the minimum length")
	}
}
