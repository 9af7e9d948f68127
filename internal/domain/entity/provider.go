// Package entity contains the core business objects of the project.
package entity

// Provider represents the authentication provider backing an account.
type Provider string

const (
	// ProviderEmail indicates a password-based account.
	ProviderEmail Provider = "email"
	// ProviderGoogle indicates a Google-federated account.
	ProviderGoogle Provider = "google"
)

// String returns the string representation of the Provider.
func (p Provider) String() string {
	return string(p)
}

// IsValid checks if the Provider is a valid value.
func (p Provider) IsValid() bool {
	switch p {
	case ProviderEmail, ProviderGoogle:
		return true
	default:
		return false
	}
}
