package repository

import (
	"context"

	"clipstream/internal/domain/entity"
)

// RecommendedVideo pairs a recommendation row with the video it points at,
// resolved by a repository-level join.
type RecommendedVideo struct {
	Recommendation *entity.Recommendation
	Video          *entity.Video
}

// RecommendationRepository defines the operations for recommendation persistence.
type RecommendationRepository interface {
	// ListForUser retrieves recommendations for the user joined with their
	// published videos, excluding videos the user uploaded themselves.
	ListForUser(ctx context.Context, userID uint64, limit int) ([]*RecommendedVideo, error)

	// Create persists a new recommendation entity.
	Create(ctx context.Context, rec *entity.Recommendation) error
}
