// Package entity contains the core business objects of the project.
package entity

import "time"

// Video represents a single uploaded video's metadata. The binary content
// lives elsewhere; this entity only tracks the playback URL and counters.
type Video struct {
	ID           uint64    // Auto-incrementing numeric identifier for the video.
	Title        string    // Display title.
	Description  string    // Free-form description.
	VideoURL     string    // Playback URL of the encoded video.
	ThumbnailURL string    // URL of the preview image.
	Duration     int       // Length of the video in seconds.
	ViewCount    int64     // Number of recorded views.
	LikeCount    int64     // Number of likes.
	DislikeCount int64     // Number of dislikes.
	IsPublished  bool      // Whether the video is visible in public listings.
	UploaderID   uint64    // Foreign key to the User who uploaded the video.
	ChannelID    uint64    // Foreign key to the Channel the video belongs to.
	CreatedAt    time.Time // Timestamp of when the video record was created.
	UpdatedAt    time.Time // Timestamp of the last modification.
}
