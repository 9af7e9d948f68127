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

// recommendationService implements the RecommendationUsecase interface.
type recommendationService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// RecommendationServiceParams holds dependencies for recommendationService, injected by Fx.
type RecommendationServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Logger    *slog.Logger
}

// NewRecommendationService is the constructor for recommendationService.
func NewRecommendationService(params RecommendationServiceParams) usecase.RecommendationUsecase {
	return &recommendationService{
		txManager: params.TxManager,
		logger:    params.Logger,
	}
}

func (srv *recommendationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListForUser returns the user's recommendations joined with published
// videos, excluding the user's own uploads.
func (srv *recommendationService) ListForUser(ctx context.Context, userID uint64, limit int) ([]*usecase.RecommendedVideoOutput, error) {
	var result []*usecase.RecommendedVideoOutput

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		rows, err := repoFactory.NewRecommendationRepository().ListForUser(ctx, userID, limit)
		if err != nil {
			return errors.Wrap(err, "failed to list recommendations")
		}

		result = make([]*usecase.RecommendedVideoOutput, 0, len(rows))
		for _, row := range rows {
			result = append(result, &usecase.RecommendedVideoOutput{
				Recommendation: row.Recommendation,
				Video:          row.Video,
			})
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Recommendation listing failed", slog.Uint64("userID", userID), slog.Any("error", err))

		return nil, err
	}

	return result, nil
}

// Record stores a recommendation, verifying the referenced video exists.
func (srv *recommendationService) Record(ctx context.Context, input *usecase.RecordRecommendationInput) (*entity.Recommendation, error) {
	var created *entity.Recommendation

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		video, err := repoFactory.NewVideoRepository().FindByID(ctx, input.VideoID)
		if err != nil {
			if errors.Is(err, repository.ErrVideoNotFound) {
				return domainerrors.ErrVideoNotFound.WrapMessage("recommendation failed")
			}

			return errors.Wrap(err, "failed to find video")
		}

		rec := &entity.Recommendation{
			UserID:    input.UserID,
			VideoID:   input.VideoID,
			ChannelID: video.ChannelID,
			Score:     input.Score,
			Reason:    input.Reason,
			Details:   input.Details,
		}
		if err := repoFactory.NewRecommendationRepository().Create(ctx, rec); err != nil {
			return errors.WithStack(err)
		}
		created = rec

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Recommendation record failed", slog.Any("error", err))

		return nil, err
	}

	return created, nil
}
