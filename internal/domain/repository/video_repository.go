package repository

import (
	"context"
	"errors"

	"clipstream/internal/domain/entity"
)

// ErrVideoNotFound is returned when a video lookup yields no row.
var ErrVideoNotFound = errors.New("video not found")

// VideoListFilter narrows List results. Zero values mean "no filter".
type VideoListFilter struct {
	PublishedOnly bool
	UploaderID    uint64
	ChannelID     uint64
	Limit         int
	Offset        int
}

// VideoRepository defines the operations for video metadata persistence.
type VideoRepository interface {
	// FindByID retrieves a single video by its unique ID.
	FindByID(ctx context.Context, id uint64) (*entity.Video, error)

	// List retrieves videos matching the filter, newest first.
	List(ctx context.Context, filter VideoListFilter) ([]*entity.Video, error)

	// Create persists a new video entity.
	Create(ctx context.Context, video *entity.Video) error

	// Update modifies an existing video entity.
	Update(ctx context.Context, video *entity.Video) error

	// Delete removes a video by ID.
	Delete(ctx context.Context, id uint64) error

	// IncrementViewCount atomically adds one view to the video.
	IncrementViewCount(ctx context.Context, id uint64) error

	// AdjustLikeCount atomically adds delta to the like counter.
	AdjustLikeCount(ctx context.Context, id uint64, delta int) error
}
