package services

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hashed, err := HashPassword("secret1!")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if !strings.Contains(hashed, "$") {
		t.Fatalf("hash %q missing salt separator", hashed)
	}
	if strings.Contains(hashed, "secret1!") {
		t.Fatal("hash contains the plain-text password")
	}

	match, err := VerifyPassword(hashed, "secret1!")
	if err != nil {
		t.Fatalf("VerifyPassword error: %v", err)
	}
	if !match {
		t.Error("correct password did not verify")
	}

	match, err = VerifyPassword(hashed, "wrong1!")
	if err != nil {
		t.Fatalf("VerifyPassword error: %v", err)
	}
	if match {
		t.Error("wrong password verified")
	}
}

func TestHashPasswordRejectsWeakPasswords(t *testing.T) {
	for _, password := range []string{"", "short", "nodigits!", "nospecial1"} {
		if _, err := HashPassword(password); err == nil {
			t.Errorf("HashPassword(%q) succeeded, want error", password)
		}
	}
}

func TestHashPasswordSaltsEachCall(t *testing.T) {
	first, err := HashPassword("secret1!")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	second, err := HashPassword("secret1!")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password are identical; salt is not random")
	}
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	if _, err := VerifyPassword("not-a-valid-hash", "secret1!"); err == nil {
		t.Error("expected error for malformed stored hash")
	}
}
