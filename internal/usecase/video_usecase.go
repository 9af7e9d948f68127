package usecase

import (
	"context"

	"clipstream/internal/domain/entity"
)

// CreateVideoInput defines the data required to register video metadata.
type CreateVideoInput struct {
	Title        string
	Description  string
	VideoURL     string
	ThumbnailURL string
	Duration     int
	ChannelID    uint64
	UploaderID   uint64
	IsPublished  bool
}

// UpdateVideoInput carries the mutable video fields. Nil pointers leave the
// existing value untouched.
type UpdateVideoInput struct {
	VideoID     uint64
	ActorID     uint64
	Title       *string
	Description *string
	IsPublished *bool
}

// ListVideosInput narrows the video listing.
type ListVideosInput struct {
	PublishedOnly bool
	ChannelID     uint64
	UploaderID    uint64
	Limit         int
	Offset        int
}

// VideoUsecase defines the interface for video-related business operations.
type VideoUsecase interface {
	Create(ctx context.Context, input *CreateVideoInput) (*entity.Video, error)
	GetByID(ctx context.Context, id uint64) (*entity.Video, error)
	List(ctx context.Context, input *ListVideosInput) ([]*entity.Video, error)
	Update(ctx context.Context, input *UpdateVideoInput) (*entity.Video, error)
	Delete(ctx context.Context, videoID, actorID uint64) error

	// AddView records a playback view against the video counter.
	AddView(ctx context.Context, videoID uint64) error

	// Like and Unlike move the like counter for the video.
	Like(ctx context.Context, videoID uint64) error
	Unlike(ctx context.Context, videoID uint64) error
}
