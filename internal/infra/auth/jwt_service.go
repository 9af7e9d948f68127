// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"clipstream/config"
	"clipstream/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// A single process-wide secret signs both token kinds; the "type" claim keeps
// them from being interchangeable.
type jwtService struct {
	secret     string        // Secret key for signing tokens.
	accessTTL  time.Duration // Time-to-live for access tokens.
	refreshTTL time.Duration // Time-to-live for refresh tokens.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.JWT == nil || cfg.JWT.Secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &jwtService{
		secret:     cfg.JWT.Secret,
		accessTTL:  time.Duration(cfg.JWT.AccessTTLMinutes) * time.Minute,
		refreshTTL: time.Duration(cfg.JWT.RefreshTTLDays) * 24 * time.Hour,
	}, nil
}

// Generate creates a single token of the given kind for a user.
func (s *jwtService) Generate(userID uint64, email string, kind service.TokenKind) (string, error) {
	ttl := s.accessTTL
	if kind == service.TokenKindRefresh {
		ttl = s.refreshTTL
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatUint(userID, 10), // Subject (who the token is for)
		"email": email,                          // Login identifier, echoed for convenience
		"iat":   now.Unix(),                     // Issued At
		"exp":   now.Add(ttl).Unix(),            // Expiration Time
		"type":  string(kind),                   // Type of token (access or refresh)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.secret))
}

// GenerateTokenPair creates a new access token and refresh token for a given user.
func (s *jwtService) GenerateTokenPair(userID uint64, email string) (accessToken string, refreshToken string, err error) {
	accessToken, err = s.Generate(userID, email, service.TokenKindAccess)
	if err != nil {
		return "", "", err
	}

	refreshToken, err = s.Generate(userID, email, service.TokenKindRefresh)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// Validate checks the token string and asserts it is of the expected kind.
// Signature, structure, expiry and kind failures all surface the same way:
// nil claims plus an error describing the cause for server-side logs.
func (s *jwtService) Validate(tokenString string, expected service.TokenKind) (*service.Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}

	kind, _ := mapClaims["type"].(string)
	if service.TokenKind(kind) != expected {
		return nil, errors.New("unexpected token type")
	}

	sub, err := mapClaims.GetSubject()
	if err != nil {
		return nil, err
	}
	userID, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return nil, errors.New("malformed subject claim")
	}

	email, _ := mapClaims["email"].(string)

	return &service.Claims{
		UserID: userID,
		Email:  email,
		Type:   service.TokenKind(kind),
	}, nil
}

// AccessTokenDuration returns the configured lifetime for access tokens.
func (s *jwtService) AccessTokenDuration() time.Duration {
	return s.accessTTL
}

// RefreshTokenDuration returns the configured lifetime for refresh tokens.
func (s *jwtService) RefreshTokenDuration() time.Duration {
	return s.refreshTTL
}
