package service

import "context"

// GoogleUser represents the normalized identity claims returned by Google.
type GoogleUser struct {
	ID            string // Google's stable subject identifier ('sub' / 'id').
	Email         string // User's email address.
	Name          string // User's display name.
	AvatarURL     string // URL to user's profile picture.
	EmailVerified bool   // Whether Google has verified the email.
}

// GoogleVerifier defines the interface for validating Google-issued credentials.
// Two shapes are accepted: a provider access token (introspected against the
// userinfo endpoint) and an ID token (verified locally).
type GoogleVerifier interface {
	// VerifyAccessToken introspects a Google OAuth access token via the
	// userinfo endpoint and returns the normalized claims. Any upstream
	// failure (non-2xx, timeout, malformed body) yields a nil user.
	VerifyAccessToken(ctx context.Context, accessToken string) (*GoogleUser, error)

	// VerifyIDToken verifies a Google ID token (issuer, audience, expiry)
	// and returns the normalized claims.
	VerifyIDToken(ctx context.Context, idToken string) (*GoogleUser, error)
}
