package impl

import (
	"context"
	"log/slog"

	deliverycontext "clipstream/internal/delivery/context"
	"clipstream/internal/domain/entity"
	domainerrors "clipstream/internal/domain/errors"
	"clipstream/internal/domain/repository"
	"clipstream/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// channelService implements the ChannelUsecase interface.
type channelService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// ChannelServiceParams holds dependencies for channelService, injected by Fx.
type ChannelServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Logger    *slog.Logger
}

// NewChannelService is the constructor for channelService.
func NewChannelService(params ChannelServiceParams) usecase.ChannelUsecase {
	return &channelService{
		txManager: params.TxManager,
		logger:    params.Logger,
	}
}

func (srv *channelService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create creates a new channel owned by the acting user.
func (srv *channelService) Create(ctx context.Context, input *usecase.CreateChannelInput) (*entity.Channel, error) {
	var created *entity.Channel

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		channel := &entity.Channel{
			Name:        input.Name,
			Description: input.Description,
			OwnerID:     input.OwnerID,
		}
		if err := repoFactory.NewChannelRepository().Create(ctx, channel); err != nil {
			return errors.WithStack(err)
		}
		created = channel

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Channel creation failed", slog.Any("error", err))

		return nil, err
	}
	srv.log(ctx).Debug("Channel created", slog.Uint64("channelID", created.ID))

	return created, nil
}

// GetByID retrieves a channel together with its published videos.
func (srv *channelService) GetByID(ctx context.Context, id uint64) (*usecase.ChannelWithVideos, error) {
	var result *usecase.ChannelWithVideos

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		channel, err := repoFactory.NewChannelRepository().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrChannelNotFound) {
				return domainerrors.ErrChannelNotFound.WrapMessage("channel lookup failed")
			}

			return errors.Wrap(err, "failed to find channel")
		}

		videos, err := repoFactory.NewVideoRepository().List(ctx, repository.VideoListFilter{
			PublishedOnly: true,
			ChannelID:     id,
		})
		if err != nil {
			return errors.Wrap(err, "failed to list channel videos")
		}

		result = &usecase.ChannelWithVideos{Channel: channel, Videos: videos}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return result, nil
}

// List retrieves channels, newest first.
func (srv *channelService) List(ctx context.Context, limit, offset int) ([]*entity.Channel, error) {
	var channels []*entity.Channel

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewChannelRepository().List(ctx, limit, offset)
		if err != nil {
			return errors.Wrap(err, "failed to list channels")
		}
		channels = found

		return nil
	})

	if err != nil {
		return nil, err
	}

	return channels, nil
}

// Update modifies a channel. Only the owner may mutate it.
func (srv *channelService) Update(ctx context.Context, input *usecase.UpdateChannelInput) (*entity.Channel, error) {
	var updated *entity.Channel

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		channelRepo := repoFactory.NewChannelRepository()

		channel, err := channelRepo.FindByID(ctx, input.ChannelID)
		if err != nil {
			if errors.Is(err, repository.ErrChannelNotFound) {
				return domainerrors.ErrChannelNotFound.WrapMessage("channel update failed")
			}

			return errors.Wrap(err, "failed to find channel")
		}

		if channel.OwnerID != input.ActorID {
			return domainerrors.ErrForbidden.WrapMessage("only the owner may modify a channel")
		}

		if input.Name != nil {
			channel.Name = *input.Name
		}
		if input.Description != nil {
			channel.Description = *input.Description
		}

		if err := channelRepo.Update(ctx, channel); err != nil {
			return errors.WithStack(err)
		}
		updated = channel

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Channel update failed", slog.Uint64("channelID", input.ChannelID), slog.Any("error", err))

		return nil, err
	}

	return updated, nil
}

// Delete removes a channel. Only the owner may delete it.
func (srv *channelService) Delete(ctx context.Context, channelID, actorID uint64) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		channelRepo := repoFactory.NewChannelRepository()

		channel, err := channelRepo.FindByID(ctx, channelID)
		if err != nil {
			if errors.Is(err, repository.ErrChannelNotFound) {
				return domainerrors.ErrChannelNotFound.WrapMessage("channel deletion failed")
			}

			return errors.Wrap(err, "failed to find channel")
		}

		if channel.OwnerID != actorID {
			return domainerrors.ErrForbidden.WrapMessage("only the owner may delete a channel")
		}

		return errors.WithStack(channelRepo.Delete(ctx, channelID))
	})

	if err != nil {
		srv.log(ctx).Warn("Channel deletion failed", slog.Uint64("channelID", channelID), slog.Any("error", err))
	}

	return err
}
