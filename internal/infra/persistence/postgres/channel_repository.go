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

// channelRepository implements the repository.ChannelRepository interface using GORM.
type channelRepository struct {
	db *gorm.DB
}

// NewChannelRepository is the constructor for channelRepository.
func NewChannelRepository(db *gorm.DB) repository.ChannelRepository {
	return &channelRepository{db: db}
}

// FindByID retrieves a single channel by its unique ID.
func (repo *channelRepository) FindByID(ctx context.Context, id uint64) (*entity.Channel, error) {
	var channelM model.ChannelModel
	if err := repo.db.WithContext(ctx).First(&channelM, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrChannelNotFound
		}

		return nil, errors.Wrap(err, "failed to find channel by id")
	}

	return toChannelDomain(&channelM), nil
}

// List retrieves channels, newest first.
func (repo *channelRepository) List(ctx context.Context, limit, offset int) ([]*entity.Channel, error) {
	query := repo.db.WithContext(ctx).Model(&model.ChannelModel{}).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var models []model.ChannelModel
	if err := query.Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list channels")
	}

	channels := make([]*entity.Channel, 0, len(models))
	for i := range models {
		channels = append(channels, toChannelDomain(&models[i]))
	}

	return channels, nil
}

// Create persists a new channel entity.
func (repo *channelRepository) Create(ctx context.Context, channel *entity.Channel) error {
	channelM := fromChannelDomain(channel)

	if err := repo.db.WithContext(ctx).Create(channelM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required channel fields")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create channel")
	}

	channel.ID = channelM.ID
	channel.CreatedAt = channelM.CreatedAt

	return nil
}

// Update modifies an existing channel entity.
func (repo *channelRepository) Update(ctx context.Context, channel *entity.Channel) error {
	if err := repo.db.WithContext(ctx).Save(fromChannelDomain(channel)).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update channel")
	}

	return nil
}

// Delete removes a channel by ID.
func (repo *channelRepository) Delete(ctx context.Context, id uint64) error {
	result := repo.db.WithContext(ctx).Delete(&model.ChannelModel{}, id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete channel")
	}
	if result.RowsAffected == 0 {
		return repository.ErrChannelNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toChannelDomain converts a GORM ChannelModel to a domain Channel entity.
func toChannelDomain(data *model.ChannelModel) *entity.Channel {
	if data == nil {
		return nil
	}

	return &entity.Channel{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		OwnerID:     data.OwnerID,
		CreatedAt:   data.CreatedAt,
	}
}

// fromChannelDomain converts a domain Channel entity to a GORM ChannelModel.
func fromChannelDomain(data *entity.Channel) *model.ChannelModel {
	if data == nil {
		return nil
	}

	return &model.ChannelModel{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		OwnerID:     data.OwnerID,
		CreatedAt:   data.CreatedAt,
	}
}
