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

// videoRepository implements the repository.VideoRepository interface using GORM.
type videoRepository struct {
	db *gorm.DB
}

// NewVideoRepository is the constructor for videoRepository.
func NewVideoRepository(db *gorm.DB) repository.VideoRepository {
	return &videoRepository{db: db}
}

// FindByID retrieves a single video by its unique ID.
func (repo *videoRepository) FindByID(ctx context.Context, id uint64) (*entity.Video, error) {
	var videoM model.VideoModel
	if err := repo.db.WithContext(ctx).First(&videoM, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrVideoNotFound
		}

		return nil, errors.Wrap(err, "failed to find video by id")
	}

	return toVideoDomain(&videoM), nil
}

// List retrieves videos matching the filter, newest first.
func (repo *videoRepository) List(ctx context.Context, filter repository.VideoListFilter) ([]*entity.Video, error) {
	query := repo.db.WithContext(ctx).Model(&model.VideoModel{}).Order("created_at DESC")

	if filter.PublishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if filter.UploaderID != 0 {
		query = query.Where("uploader_id = ?", filter.UploaderID)
	}
	if filter.ChannelID != 0 {
		query = query.Where("channel_id = ?", filter.ChannelID)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var models []model.VideoModel
	if err := query.Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list videos")
	}

	videos := make([]*entity.Video, 0, len(models))
	for i := range models {
		videos = append(videos, toVideoDomain(&models[i]))
	}

	return videos, nil
}

// Create persists a new video entity.
func (repo *videoRepository) Create(ctx context.Context, video *entity.Video) error {
	videoM := fromVideoDomain(video)

	if err := repo.db.WithContext(ctx).Create(videoM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrChannelNotFound.WrapMessage("invalid channel or uploader reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required video fields")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create video")
	}

	video.ID = videoM.ID
	video.CreatedAt = videoM.CreatedAt
	video.UpdatedAt = videoM.UpdatedAt

	return nil
}

// Update modifies an existing video entity.
func (repo *videoRepository) Update(ctx context.Context, video *entity.Video) error {
	videoM := fromVideoDomain(video)

	if err := repo.db.WithContext(ctx).Save(videoM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update video")
	}

	video.UpdatedAt = videoM.UpdatedAt

	return nil
}

// Delete removes a video by ID.
func (repo *videoRepository) Delete(ctx context.Context, id uint64) error {
	result := repo.db.WithContext(ctx).Delete(&model.VideoModel{}, id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete video")
	}
	if result.RowsAffected == 0 {
		return repository.ErrVideoNotFound
	}

	return nil
}

// IncrementViewCount atomically adds one view to the video.
func (repo *videoRepository) IncrementViewCount(ctx context.Context, id uint64) error {
	result := repo.db.WithContext(ctx).
		Model(&model.VideoModel{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to increment view count")
	}
	if result.RowsAffected == 0 {
		return repository.ErrVideoNotFound
	}

	return nil
}

// AdjustLikeCount atomically adds delta to the like counter.
// The GREATEST guard keeps concurrent unlikes from driving the counter negative.
func (repo *videoRepository) AdjustLikeCount(ctx context.Context, id uint64, delta int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.VideoModel{}).
		Where("id = ?", id).
		UpdateColumn("like_count", gorm.Expr("GREATEST(like_count + ?, 0)", delta))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to adjust like count")
	}
	if result.RowsAffected == 0 {
		return repository.ErrVideoNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toVideoDomain converts a GORM VideoModel to a domain Video entity.
func toVideoDomain(data *model.VideoModel) *entity.Video {
	if data == nil {
		return nil
	}

	return &entity.Video{
		ID:           data.ID,
		Title:        data.Title,
		Description:  data.Description,
		VideoURL:     data.VideoURL,
		ThumbnailURL: data.ThumbnailURL,
		Duration:     data.Duration,
		ViewCount:    data.ViewCount,
		LikeCount:    data.LikeCount,
		DislikeCount: data.DislikeCount,
		IsPublished:  data.IsPublished,
		UploaderID:   data.UploaderID,
		ChannelID:    data.ChannelID,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromVideoDomain converts a domain Video entity to a GORM VideoModel.
func fromVideoDomain(data *entity.Video) *model.VideoModel {
	if data == nil {
		return nil
	}

	return &model.VideoModel{
		ID:           data.ID,
		Title:        data.Title,
		Description:  data.Description,
		VideoURL:     data.VideoURL,
		ThumbnailURL: data.ThumbnailURL,
		Duration:     data.Duration,
		ViewCount:    data.ViewCount,
		LikeCount:    data.LikeCount,
		DislikeCount: data.DislikeCount,
		IsPublished:  data.IsPublished,
		UploaderID:   data.UploaderID,
		ChannelID:    data.ChannelID,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
