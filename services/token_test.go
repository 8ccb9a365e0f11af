package services

import (
	"os"
	"testing"

	"main/utils"
)

func init() {
	os.Setenv("GO_ENV", "test")
	utils.InitJWT()
}

func TestTokenRoundTrip(t *testing.T) {
	refresh, err := GenerateRefreshToken("user-123")
	if err != nil {
		t.Fatalf("GenerateRefreshToken error: %v", err)
	}

	userID, err := ValidateRefreshToken(refresh)
	if err != nil {
		t.Fatalf("ValidateRefreshToken error: %v", err)
	}
	if userID != "user-123" {
		t.Errorf("user ID = %q, want user-123", userID)
	}
}

func TestAccessTokenIsNotARefreshToken(t *testing.T) {
	access, err := GenerateToken("user-123")
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := ValidateRefreshToken(access); err == nil {
		t.Error("access token accepted as a refresh token")
	}
}

func TestValidateRefreshTokenRejectsGarbage(t *testing.T) {
	if _, err := ValidateRefreshToken("not.a.token"); err == nil {
		t.Error("expected error for malformed token")
	}
}
