package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenKind distinguishes the two token types minted by the codec.
type TokenKind string

const (
	// TokenKindAccess is the short-lived bearer token presented on API calls.
	TokenKindAccess TokenKind = "access"
	// TokenKindRefresh is the long-lived token exchanged for new pairs.
	TokenKindRefresh TokenKind = "refresh"
)

// Claims defines the custom claims for the JWT tokens.
type Claims struct {
	UserID uint64
	Email  string
	Type   TokenKind
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Generate creates a single token of the given kind for a user.
	Generate(userID uint64, email string, kind TokenKind) (string, error)

	// GenerateTokenPair creates a new access token and refresh token for a given user.
	GenerateTokenPair(userID uint64, email string) (accessToken string, refreshToken string, err error)

	// Validate checks the token string and asserts it is of the expected kind.
	// Every failure mode (bad signature, malformed, expired, wrong kind)
	// yields nil claims and a non-nil error; callers must not distinguish
	// them towards the client.
	Validate(tokenString string, expected TokenKind) (*Claims, error)

	// AccessTokenDuration returns the configured lifetime for access tokens.
	AccessTokenDuration() time.Duration

	// RefreshTokenDuration returns the configured lifetime for refresh tokens.
	RefreshTokenDuration() time.Duration
}
