package auth

import (
	"testing"

	"github.com/cantiere-digitale/giornale/internal/config"
	"github.com/cantiere-digitale/giornale/internal/constant"
)

// Perform token generation and verify the generated tokens to ensure
// VerifyJwtToken is correct.
func TestJWT(t *testing.T) {
	jwtService := NewJwt(config.AuthConfig{JWT_SECRET: "test-secret"}, nil)

	payload := JWTPayload{
		ID:          "id1234",
		Email:       "dl@cantiere.it",
		DisplayName: "Ing. Mario Rossi",
	}

	refreshToken, accessToken, err := jwtService.GenerateRefreshAndAccessToken(payload)
	if err != nil {
		t.Fatalf("An error occurred during refresh token and access token generation. Error: %v", err)
	}

	refreshClaims, err := jwtService.VerifyJwtToken(*refreshToken)
	if err != nil {
		t.Errorf("An error occurred during refresh token verification. Error: %v", err)
	}
	if refreshClaims.Type != constant.JWT_TYPE_REFRESH {
		t.Errorf("Refresh token type = %q, want %q", refreshClaims.Type, constant.JWT_TYPE_REFRESH)
	}

	accessClaims, err := jwtService.VerifyJwtToken(*accessToken)
	if err != nil {
		t.Errorf("An error occurred during access token verification. Error: %v", err)
	}
	if accessClaims.Type != constant.JWT_TYPE_ACCESS {
		t.Errorf("Access token type = %q, want %q", accessClaims.Type, constant.JWT_TYPE_ACCESS)
	}
	if accessClaims.User != payload {
		t.Errorf("Access token payload = %+v, want %+v", accessClaims.User, payload)
	}
}

func TestVerifyJwtTokenRejectsWrongSecret(t *testing.T) {
	jwtService := NewJwt(config.AuthConfig{JWT_SECRET: "secret-a"}, nil)
	otherService := NewJwt(config.AuthConfig{JWT_SECRET: "secret-b"}, nil)

	_, accessToken, err := jwtService.GenerateRefreshAndAccessToken(JWTPayload{ID: "id1"})
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}

	if _, err := otherService.VerifyJwtToken(*accessToken); err == nil {
		t.Error("VerifyJwtToken accepted a token signed with a different secret")
	}
}
