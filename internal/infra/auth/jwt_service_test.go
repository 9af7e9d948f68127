package auth

import (
	"testing"
	"time"

	"clipstream/config"
	"clipstream/internal/domain/service"

	"github.com/stretchr/testify/assert"
)

func testJWTConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT = &config.JWTConfig{
		Secret:           "test_secret_key_very_long_for_testing",
		Algorithm:        "HS256",
		AccessTTLMinutes: 30,
		RefreshTTLDays:   30,
	}

	return cfg
}

func TestJWTService_GenerateAndValidateTokenPair(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig())
	assert.NoError(t, err)
	assert.NotNil(t, jwtService)

	userID := uint64(42)
	email := "user@example.com"

	accessToken, refreshToken, err := jwtService.GenerateTokenPair(userID, email)
	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)

	// Validate access token
	accessClaims, err := jwtService.Validate(accessToken, service.TokenKindAccess)
	assert.NoError(t, err)
	assert.NotNil(t, accessClaims)
	assert.Equal(t, userID, accessClaims.UserID)
	assert.Equal(t, email, accessClaims.Email)
	assert.Equal(t, service.TokenKindAccess, accessClaims.Type)

	// Validate refresh token
	refreshClaims, err := jwtService.Validate(refreshToken, service.TokenKindRefresh)
	assert.NoError(t, err)
	assert.NotNil(t, refreshClaims)
	assert.Equal(t, userID, refreshClaims.UserID)
	assert.Equal(t, service.TokenKindRefresh, refreshClaims.Type)
}

func TestJWTService_KindMismatch(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig())
	assert.NoError(t, err)

	accessToken, refreshToken, err := jwtService.GenerateTokenPair(7, "user@example.com")
	assert.NoError(t, err)

	// An access token must not pass as a refresh token, and vice versa.
	claims, err := jwtService.Validate(accessToken, service.TokenKindRefresh)
	assert.Error(t, err)
	assert.Nil(t, claims)

	claims, err = jwtService.Validate(refreshToken, service.TokenKindAccess)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_InvalidToken(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig())
	assert.NoError(t, err)

	claims, err := jwtService.Validate("clearly-not-a-jwt-token-format", service.TokenKindAccess)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_WrongSecret(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig())
	assert.NoError(t, err)

	otherCfg := testJWTConfig()
	otherCfg.JWT.Secret = "a_completely_different_secret_key"
	otherService, err := NewJWTService(otherCfg)
	assert.NoError(t, err)

	token, err := jwtService.Generate(9, "user@example.com", service.TokenKindAccess)
	assert.NoError(t, err)

	claims, err := otherService.Validate(token, service.TokenKindAccess)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	// Negative TTL mints an already-expired token.
	svc := &jwtService{
		secret:     "test_secret_key_very_long_for_testing",
		accessTTL:  -time.Minute,
		refreshTTL: 30 * 24 * time.Hour,
	}

	token, err := svc.Generate(5, "user@example.com", service.TokenKindAccess)
	assert.NoError(t, err)

	claims, err := svc.Validate(token, service.TokenKindAccess)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_EmptySecret(t *testing.T) {
	cfg := testJWTConfig()
	cfg.JWT.Secret = ""

	jwtService, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, jwtService)
	assert.Contains(t, err.Error(), "jwt secret must be provided")
}

func TestJWTService_TokenDurations(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig())
	assert.NoError(t, err)

	assert.Equal(t, 30*time.Minute, jwtService.AccessTokenDuration())
	assert.Equal(t, 30*24*time.Hour, jwtService.RefreshTokenDuration())
}
