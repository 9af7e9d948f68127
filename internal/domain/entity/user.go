// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is the core principal in the system, representing a single account.
// It carries both identity data and the account's credential state: a
// bcrypt password hash, a Google binding, or both. Federated-only accounts
// have no password hash at all.
type User struct {
	ID               uint64     // Auto-incrementing numeric identifier for the user.
	Email            string     // The user's unique email, used as the login identifier.
	Username         string     // The user's unique public handle.
	FullName         string     // Optional display name.
	AvatarURL        string     // Optional URL of the user's profile picture.
	PasswordHash     string     // Bcrypt digest of the password; empty for federated-only accounts.
	IsActive         bool       // Whether the account may authenticate. Inactive accounts are locked out.
	IsVerified       bool       // Whether the email address has been verified.
	GoogleID         string     // Google's stable subject identifier; empty when no Google account is linked.
	Provider         Provider   // The provider that most recently authenticated this account.
	RefreshTokenHash string     // SHA-256 hex of the single live refresh token; empty when logged out.
	LastLogin        *time.Time // Timestamp of the most recent successful authentication.
	CreatedAt        time.Time  // Timestamp of when this account was created.
	UpdatedAt        time.Time  // Timestamp of the last modification to this account.
}

// HasPassword reports whether the account can authenticate with a password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// HasGoogleBinding reports whether a Google account is linked.
func (u *User) HasGoogleBinding() bool {
	return u.GoogleID != ""
}
