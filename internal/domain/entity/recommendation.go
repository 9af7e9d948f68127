// Package entity contains the core business objects of the project.
package entity

import "time"

// Recommendation records that a video was suggested to a user, with the
// score and reason the suggestion was made. Referenced rows are resolved
// through per-repository joins rather than embedded entities.
type Recommendation struct {
	ID        uint64    // Auto-incrementing numeric identifier for the recommendation.
	UserID    uint64    // Foreign key to the User the recommendation targets.
	VideoID   uint64    // Foreign key to the recommended Video.
	ChannelID uint64    // Foreign key to the Channel the video belongs to.
	Score     float64   // Relevance score assigned by the recommender.
	Reason    string    // Short machine-readable reason code.
	Details   string    // Optional human-readable explanation.
	CreatedAt time.Time // Timestamp of when the recommendation was recorded.
}
