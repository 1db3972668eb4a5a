package auth

import (
	"testing"
	"time"
)

func testManager() *JWTManager {
	return NewJWTManager(JWTConfig{
		Secret:        "test-secret-key-for-unit-tests",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "lexistream-api",
	})
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	manager := testManager()

	token, jti, err := manager.GenerateAccessToken(42, "learner_alice", "user", 3)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if jti == "" {
		t.Fatal("expected a non-empty JTI")
	}

	claims, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}

	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Username != "learner_alice" {
		t.Errorf("Username = %q, want learner_alice", claims.Username)
	}
	if claims.Role != "user" {
		t.Errorf("Role = %q, want user", claims.Role)
	}
	if claims.TokenType != "access" {
		t.Errorf("TokenType = %q, want access", claims.TokenType)
	}
	if claims.TokenVersion != 3 {
		t.Errorf("TokenVersion = %d, want 3", claims.TokenVersion)
	}
	if claims.ID != jti {
		t.Errorf("claims.ID = %q, want JTI %q", claims.ID, jti)
	}
}

func TestRefreshTokenHasRefreshType(t *testing.T) {
	manager := testManager()

	token, _, err := manager.GenerateRefreshToken(1, "learner_alice", "user", 0)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	claims, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.TokenType != "refresh" {
		t.Errorf("TokenType = %q, want refresh", claims.TokenType)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	manager := testManager()
	other := NewJWTManager(JWTConfig{
		Secret:        "a-completely-different-secret",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "lexistream-api",
	})

	token, _, err := manager.GenerateAccessToken(1, "learner_alice", "user", 0)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := other.ValidateToken(token); err != ErrInvalidToken {
		t.Errorf("ValidateToken with wrong secret = %v, want ErrInvalidToken", err)
	}
}

func TestValidateExpiredToken(t *testing.T) {
	manager := NewJWTManager(JWTConfig{
		Secret:        "test-secret-key-for-unit-tests",
		Expiry:        -time.Minute, // already expired
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "lexistream-api",
	})

	token, _, err := manager.GenerateAccessToken(1, "learner_alice", "user", 0)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := manager.ValidateToken(token); err != ErrExpiredToken {
		t.Errorf("ValidateToken on expired token = %v, want ErrExpiredToken", err)
	}
}

func TestExtractClaimsSkipsSignatureCheck(t *testing.T) {
	manager := testManager()
	other := NewJWTManager(JWTConfig{
		Secret:        "a-completely-different-secret",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "lexistream-api",
	})

	token, _, err := manager.GenerateAccessToken(7, "learner_bob", "teacher", 1)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := other.ExtractClaims(token)
	if err != nil {
		t.Fatalf("ExtractClaims: %v", err)
	}
	if claims.UserID != 7 || claims.Role != "teacher" {
		t.Errorf("ExtractClaims = user %d role %q, want user 7 role teacher", claims.UserID, claims.Role)
	}
}

func TestGetTokenExpiry(t *testing.T) {
	manager := testManager()

	before := time.Now()
	token, _, err := manager.GenerateAccessToken(1, "learner_alice", "user", 0)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	expiry, err := manager.GetTokenExpiry(token)
	if err != nil {
		t.Fatalf("GetTokenExpiry: %v", err)
	}

	// NumericDate truncates to whole seconds
	min := before.Add(time.Hour).Add(-2 * time.Second)
	max := time.Now().Add(time.Hour).Add(2 * time.Second)
	if expiry.Before(min) || expiry.After(max) {
		t.Errorf("expiry = %v, want about one hour from now", expiry)
	}
}
