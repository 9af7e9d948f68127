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

// videoService implements the VideoUsecase interface.
type videoService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// VideoServiceParams holds dependencies for videoService, injected by Fx.
type VideoServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Logger    *slog.Logger
}

// NewVideoService is the constructor for videoService.
func NewVideoService(params VideoServiceParams) usecase.VideoUsecase {
	return &videoService{
		txManager: params.TxManager,
		logger:    params.Logger,
	}
}

func (srv *videoService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create registers new video metadata under an existing channel. The channel
// lookup and the insert share a transaction so the FK cannot go stale.
func (srv *videoService) Create(ctx context.Context, input *usecase.CreateVideoInput) (*entity.Video, error) {
	var created *entity.Video

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		channelRepo := repoFactory.NewChannelRepository()
		videoRepo := repoFactory.NewVideoRepository()

		if _, err := channelRepo.FindByID(ctx, input.ChannelID); err != nil {
			if errors.Is(err, repository.ErrChannelNotFound) {
				return domainerrors.ErrChannelNotFound.WrapMessage("video creation failed")
			}

			return errors.Wrap(err, "failed to find channel")
		}

		video := &entity.Video{
			Title:        input.Title,
			Description:  input.Description,
			VideoURL:     input.VideoURL,
			ThumbnailURL: input.ThumbnailURL,
			Duration:     input.Duration,
			IsPublished:  input.IsPublished,
			UploaderID:   input.UploaderID,
			ChannelID:    input.ChannelID,
		}
		if err := videoRepo.Create(ctx, video); err != nil {
			return errors.WithStack(err)
		}
		created = video

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Video creation failed", slog.Any("error", err))

		return nil, err
	}
	srv.log(ctx).Debug("Video created", slog.Uint64("videoID", created.ID))

	return created, nil
}

// GetByID retrieves a single video.
func (srv *videoService) GetByID(ctx context.Context, id uint64) (*entity.Video, error) {
	var video *entity.Video

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewVideoRepository().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrVideoNotFound) {
				return domainerrors.ErrVideoNotFound.WrapMessage("video lookup failed")
			}

			return errors.Wrap(err, "failed to find video")
		}
		video = found

		return nil
	})

	if err != nil {
		return nil, err
	}

	return video, nil
}

// List retrieves videos matching the filter.
func (srv *videoService) List(ctx context.Context, input *usecase.ListVideosInput) ([]*entity.Video, error) {
	var videos []*entity.Video

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewVideoRepository().List(ctx, repository.VideoListFilter{
			PublishedOnly: input.PublishedOnly,
			UploaderID:    input.UploaderID,
			ChannelID:     input.ChannelID,
			Limit:         input.Limit,
			Offset:        input.Offset,
		})
		if err != nil {
			return errors.Wrap(err, "failed to list videos")
		}
		videos = found

		return nil
	})

	if err != nil {
		return nil, err
	}

	return videos, nil
}

// Update modifies a video. Only the uploader may mutate it.
func (srv *videoService) Update(ctx context.Context, input *usecase.UpdateVideoInput) (*entity.Video, error) {
	var updated *entity.Video

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		videoRepo := repoFactory.NewVideoRepository()

		video, err := videoRepo.FindByID(ctx, input.VideoID)
		if err != nil {
			if errors.Is(err, repository.ErrVideoNotFound) {
				return domainerrors.ErrVideoNotFound.WrapMessage("video update failed")
			}

			return errors.Wrap(err, "failed to find video")
		}

		if video.UploaderID != input.ActorID {
			return domainerrors.ErrForbidden.WrapMessage("only the uploader may modify a video")
		}

		if input.Title != nil {
			video.Title = *input.Title
		}
		if input.Description != nil {
			video.Description = *input.Description
		}
		if input.IsPublished != nil {
			video.IsPublished = *input.IsPublished
		}

		if err := videoRepo.Update(ctx, video); err != nil {
			return errors.WithStack(err)
		}
		updated = video

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Video update failed", slog.Uint64("videoID", input.VideoID), slog.Any("error", err))

		return nil, err
	}

	return updated, nil
}

// Delete removes a video. Only the uploader may delete it.
func (srv *videoService) Delete(ctx context.Context, videoID, actorID uint64) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		videoRepo := repoFactory.NewVideoRepository()

		video, err := videoRepo.FindByID(ctx, videoID)
		if err != nil {
			if errors.Is(err, repository.ErrVideoNotFound) {
				return domainerrors.ErrVideoNotFound.WrapMessage("video deletion failed")
			}

			return errors.Wrap(err, "failed to find video")
		}

		if video.UploaderID != actorID {
			return domainerrors.ErrForbidden.WrapMessage("only the uploader may delete a video")
		}

		return errors.WithStack(videoRepo.Delete(ctx, videoID))
	})

	if err != nil {
		srv.log(ctx).Warn("Video deletion failed", slog.Uint64("videoID", videoID), slog.Any("error", err))
	}

	return err
}

// AddView records a playback view against the video counter.
func (srv *videoService) AddView(ctx context.Context, videoID uint64) error {
	return srv.adjustCounter(ctx, videoID, func(repo repository.VideoRepository) error {
		return repo.IncrementViewCount(ctx, videoID)
	})
}

// Like moves the like counter up by one.
func (srv *videoService) Like(ctx context.Context, videoID uint64) error {
	return srv.adjustCounter(ctx, videoID, func(repo repository.VideoRepository) error {
		return repo.AdjustLikeCount(ctx, videoID, 1)
	})
}

// Unlike moves the like counter down by one.
func (srv *videoService) Unlike(ctx context.Context, videoID uint64) error {
	return srv.adjustCounter(ctx, videoID, func(repo repository.VideoRepository) error {
		return repo.AdjustLikeCount(ctx, videoID, -1)
	})
}

func (srv *videoService) adjustCounter(ctx context.Context, videoID uint64, fn func(repo repository.VideoRepository) error) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := fn(repoFactory.NewVideoRepository()); err != nil {
			if errors.Is(err, repository.ErrVideoNotFound) {
				return domainerrors.ErrVideoNotFound.WrapMessage("counter update failed")
			}

			return errors.WithStack(err)
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Debug("Counter update failed", slog.Uint64("videoID", videoID), slog.Any("error", err))
	}

	return err
}
