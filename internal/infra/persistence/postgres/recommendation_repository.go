package postgres

import (
	"context"

	"clipstream/internal/domain/entity"
	domainerrors "clipstream/internal/domain/errors"
	"clipstream/internal/domain/repository"
	"clipstream/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// recommendationRepository implements the repository.RecommendationRepository interface using GORM.
type recommendationRepository struct {
	db *gorm.DB
}

// NewRecommendationRepository is the constructor for recommendationRepository.
func NewRecommendationRepository(db *gorm.DB) repository.RecommendationRepository {
	return &recommendationRepository{db: db}
}

// recommendedVideoRow is the scan target for the recommendations-videos join.
type recommendedVideoRow struct {
	model.RecommendationModel
	Video model.VideoModel `gorm:"embedded;embeddedPrefix:video_"`
}

// ListForUser retrieves recommendations for the user joined with their
// published videos, excluding videos the user uploaded themselves.
func (repo *recommendationRepository) ListForUser(ctx context.Context, userID uint64, limit int) ([]*repository.RecommendedVideo, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.RecommendationModel{}).
		Select(`recommendations.*,
			videos.id AS video_id, videos.title AS video_title,
			videos.description AS video_description, videos.video_url AS video_video_url,
			videos.thumbnail_url AS video_thumbnail_url, videos.duration AS video_duration,
			videos.view_count AS video_view_count, videos.like_count AS video_like_count,
			videos.dislike_count AS video_dislike_count, videos.is_published AS video_is_published,
			videos.uploader_id AS video_uploader_id, videos.channel_id AS video_channel_id,
			videos.created_at AS video_created_at, videos.updated_at AS video_updated_at`).
		Joins("JOIN videos ON videos.id = recommendations.video_id").
		Where("recommendations.user_id = ?", userID).
		Where("videos.is_published = ?", true).
		Where("videos.uploader_id <> ?", userID).
		Order("recommendations.score DESC, recommendations.created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []recommendedVideoRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list recommendations")
	}

	result := make([]*repository.RecommendedVideo, 0, len(rows))
	for i := range rows {
		result = append(result, &repository.RecommendedVideo{
			Recommendation: toRecommendationDomain(&rows[i].RecommendationModel),
			Video:          toVideoDomain(&rows[i].Video),
		})
	}

	return result, nil
}

// Create persists a new recommendation entity.
func (repo *recommendationRepository) Create(ctx context.Context, rec *entity.Recommendation) error {
	recM := fromRecommendationDomain(rec)

	if err := repo.db.WithContext(ctx).Create(recM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrVideoNotFound.WrapMessage("invalid video or user reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create recommendation")
	}

	rec.ID = recM.ID
	rec.CreatedAt = recM.CreatedAt

	return nil
}

// --- Mapper Functions ---

// toRecommendationDomain converts a GORM RecommendationModel to a domain Recommendation entity.
func toRecommendationDomain(data *model.RecommendationModel) *entity.Recommendation {
	if data == nil {
		return nil
	}

	return &entity.Recommendation{
		ID:        data.ID,
		UserID:    data.UserID,
		VideoID:   data.VideoID,
		ChannelID: data.ChannelID,
		Score:     data.Score,
		Reason:    data.Reason,
		Details:   data.Details,
		CreatedAt: data.CreatedAt,
	}
}

// fromRecommendationDomain converts a domain Recommendation entity to a GORM RecommendationModel.
func fromRecommendationDomain(data *entity.Recommendation) *model.RecommendationModel {
	if data == nil {
		return nil
	}

	return &model.RecommendationModel{
		ID:        data.ID,
		UserID:    data.UserID,
		VideoID:   data.VideoID,
		ChannelID: data.ChannelID,
		Score:     data.Score,
		Reason:    data.Reason,
		Details:   data.Details,
		CreatedAt: data.CreatedAt,
	}
}
