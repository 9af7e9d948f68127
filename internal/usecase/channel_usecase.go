package usecase

import (
	"context"

	"clipstream/internal/domain/entity"
)

// CreateChannelInput defines the data required to create a channel.
type CreateChannelInput struct {
	Name        string
	Description string
	OwnerID     uint64
}

// UpdateChannelInput carries the mutable channel fields.
type UpdateChannelInput struct {
	ChannelID   uint64
	ActorID     uint64
	Name        *string
	Description *string
}

// ChannelWithVideos pairs a channel with its published videos.
type ChannelWithVideos struct {
	Channel *entity.Channel
	Videos  []*entity.Video
}

// ChannelUsecase defines the interface for channel-related business operations.
type ChannelUsecase interface {
	Create(ctx context.Context, input *CreateChannelInput) (*entity.Channel, error)
	GetByID(ctx context.Context, id uint64) (*ChannelWithVideos, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Channel, error)
	Update(ctx context.Context, input *UpdateChannelInput) (*entity.Channel, error)
	Delete(ctx context.Context, channelID, actorID uint64) error
}
