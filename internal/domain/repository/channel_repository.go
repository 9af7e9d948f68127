package repository

import (
	"context"
	"errors"

	"clipstream/internal/domain/entity"
)

// ErrChannelNotFound is returned when a channel lookup yields no row.
var ErrChannelNotFound = errors.New("channel not found")

// ChannelRepository defines the operations for channel persistence.
type ChannelRepository interface {
	// FindByID retrieves a single channel by its unique ID.
	FindByID(ctx context.Context, id uint64) (*entity.Channel, error)

	// List retrieves channels, newest first.
	List(ctx context.Context, limit, offset int) ([]*entity.Channel, error)

	// Create persists a new channel entity.
	Create(ctx context.Context, channel *entity.Channel) error

	// Update modifies an existing channel entity.
	Update(ctx context.Context, channel *entity.Channel) error

	// Delete removes a channel by ID.
	Delete(ctx context.Context, id uint64) error
}
