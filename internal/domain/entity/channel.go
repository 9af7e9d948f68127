// Package entity contains the core business objects of the project.
package entity

import "time"

// Channel groups videos under a single owner-managed namespace.
type Channel struct {
	ID          uint64    // Auto-incrementing numeric identifier for the channel.
	Name        string    // Display name of the channel.
	Description string    // Free-form description.
	OwnerID     uint64    // Foreign key to the User who owns the channel.
	CreatedAt   time.Time // Timestamp of when the channel was created.
}
