// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"clipstream/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Email    string
	Username string
	Password string
	FullName string
}

// LoginInput defines the data required for a password login.
type LoginInput struct {
	Email    string
	Password string
}

// GoogleLoginInput carries one of the two Google credential shapes.
// AccessToken is introspected against the userinfo endpoint; IDToken is
// verified locally. Exactly one should be set.
type GoogleLoginInput struct {
	AccessToken string
	IDToken     string
}

// RefreshInput defines the data required to rotate a token pair.
type RefreshInput struct {
	RefreshToken string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created account's basic information.
// Registration never issues tokens; the client logs in afterwards.
type RegisterOutput struct {
	User *entity.User
}

// TokenPairOutput returns the issued token pair.
type TokenPairOutput struct {
	AccessToken  string
	RefreshToken string
	TokenType    string // Always "bearer".
	ExpiresIn    int64  // Access token lifetime in seconds.
	User         *entity.User
}

// AuthUsecase defines the interface for session-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// Register creates a new password-based account. A taken email yields a
	// conflict regardless of which provider holds it.
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)

	// Login authenticates with email and password and issues a token pair.
	Login(ctx context.Context, input *LoginInput) (*TokenPairOutput, error)

	// GoogleLogin authenticates with a Google credential, creating or
	// linking the account as needed, and issues a token pair.
	GoogleLogin(ctx context.Context, input *GoogleLoginInput) (*TokenPairOutput, error)

	// Refresh exchanges a live refresh token for a new pair. The old
	// refresh token is dead afterwards.
	Refresh(ctx context.Context, input *RefreshInput) (*TokenPairOutput, error)

	// ResolveBearer validates an access token and returns the active
	// account behind it.
	ResolveBearer(ctx context.Context, accessToken string) (*entity.User, error)

	// Logout revokes the account's live session. Idempotent.
	Logout(ctx context.Context, userID uint64) error
}
