package token

import (
	"testing"
	"time"

	"trafficsim/pkg/config"
)

func TestJWTManager_GenerateAccessToken(t *testing.T) {
	manager := NewJWTManager(&JWTConfig{
		SecretKey:         "test-secret-key",
		AccessTokenExpiry: 15 * time.Minute,
		Issuer:            "test-issuer",
	})

	token, err := manager.GenerateAccessToken("user-123", "testuser", "admin")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	if token == "" {
		t.Error("expected non-empty token")
	}

	// header.payload.signature
	parts := 0
	for _, c := range token {
		if c == '.' {
			parts++
		}
	}
	if parts != 2 {
		t.Errorf("expected 2 dots in JWT, got %d", parts)
	}
}

func TestJWTManager_ValidateToken(t *testing.T) {
	manager := NewJWTManager(&JWTConfig{
		SecretKey:         "test-secret-key",
		AccessTokenExpiry: 15 * time.Minute,
		Issuer:            "test-issuer",
	})

	token, _ := manager.GenerateAccessToken("user-123", "testuser", "admin")

	claims, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}

	if claims.UserID != "user-123" {
		t.Errorf("expected userID 'user-123', got %s", claims.UserID)
	}
	if claims.Username != "testuser" {
		t.Errorf("expected username 'testuser', got %s", claims.Username)
	}
	if claims.Role != "admin" {
		t.Errorf("expected role 'admin', got %s", claims.Role)
	}
	if claims.Issuer != "test-issuer" {
		t.Errorf("expected issuer 'test-issuer', got %s", claims.Issuer)
	}
}

func TestJWTManager_ValidateToken_Invalid(t *testing.T) {
	manager := NewJWTManager(nil)

	_, err := manager.ValidateToken("invalid-token")
	if err == nil {
		t.Error("expected error for invalid token")
	}
}

func TestJWTManager_ValidateToken_Expired(t *testing.T) {
	manager := NewJWTManager(&JWTConfig{
		SecretKey:         "test-secret",
		AccessTokenExpiry: 1 * time.Millisecond,
		Issuer:            "test",
	})

	token, _ := manager.GenerateAccessToken("user", "username", "role")

	time.Sleep(10 * time.Millisecond)

	_, err := manager.ValidateToken(token)
	if err == nil {
		t.Error("expected error for expired token")
	}
}

func TestJWTManager_ValidateToken_WrongSecret(t *testing.T) {
	manager1 := NewJWTManager(&JWTConfig{
		SecretKey:         "secret-1",
		AccessTokenExpiry: 15 * time.Minute,
	})
	manager2 := NewJWTManager(&JWTConfig{
		SecretKey:         "secret-2",
		AccessTokenExpiry: 15 * time.Minute,
	})

	token, _ := manager1.GenerateAccessToken("user", "username", "role")

	_, err := manager2.ValidateToken(token)
	if err == nil {
		t.Error("expected error for token signed with different secret")
	}
}

func TestJWTManager_RefreshAccessToken(t *testing.T) {
	manager := NewJWTManager(&JWTConfig{
		SecretKey:          "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
		Issuer:             "test",
	})

	refresh, err := manager.GenerateRefreshToken("user-1", "alice", "viewer")
	if err != nil {
		t.Fatalf("failed to generate refresh token: %v", err)
	}

	access, claims, err := manager.RefreshAccessToken(refresh)
	if err != nil {
		t.Fatalf("failed to refresh: %v", err)
	}

	if access == "" {
		t.Error("expected non-empty access token")
	}
	if claims.UserID != "user-1" {
		t.Errorf("expected userID 'user-1', got %s", claims.UserID)
	}
}

func TestFromAuthConfig(t *testing.T) {
	cfg := &config.AuthConfig{
		SecretKey:   "configured-secret",
		Issuer:      "simulator-svc",
		TokenExpiry: time.Hour,
	}

	jwtCfg := FromAuthConfig(cfg)

	if jwtCfg.SecretKey != "configured-secret" {
		t.Errorf("expected configured secret, got %s", jwtCfg.SecretKey)
	}
	if jwtCfg.Issuer != "simulator-svc" {
		t.Errorf("expected issuer 'simulator-svc', got %s", jwtCfg.Issuer)
	}
	if jwtCfg.AccessTokenExpiry != time.Hour {
		t.Errorf("expected expiry 1h, got %v", jwtCfg.AccessTokenExpiry)
	}

	// Пустые поля остаются дефолтными
	empty := FromAuthConfig(&config.AuthConfig{})
	if empty.Issuer != "trafficsim" {
		t.Errorf("expected default issuer, got %s", empty.Issuer)
	}
}
