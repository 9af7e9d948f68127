package usecase

import (
	"context"

	"clipstream/internal/domain/entity"
)

// RecordRecommendationInput defines the data required to store a recommendation.
type RecordRecommendationInput struct {
	UserID    uint64
	VideoID   uint64
	ChannelID uint64
	Score     float64
	Reason    string
	Details   string
}

// RecommendedVideoOutput pairs a recommendation with the video it points at.
type RecommendedVideoOutput struct {
	Recommendation *entity.Recommendation
	Video          *entity.Video
}

// RecommendationUsecase defines the interface for recommendation-related business operations.
type RecommendationUsecase interface {
	// ListForUser returns the user's recommendations joined with published
	// videos, excluding the user's own uploads.
	ListForUser(ctx context.Context, userID uint64, limit int) ([]*RecommendedVideoOutput, error)

	// Record stores a recommendation for later retrieval.
	Record(ctx context.Context, input *RecordRecommendationInput) (*entity.Recommendation, error)
}
