package model

import "time"

// VideoModel mirrors the 'videos' table.
type VideoModel struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement"`
	Title        string `gorm:"type:varchar(255);not null"`
	Description  string `gorm:"type:text"`
	VideoURL     string `gorm:"type:varchar(512);not null"`
	ThumbnailURL string `gorm:"type:varchar(512)"`
	Duration     int    `gorm:"not null;default:0"`
	ViewCount    int64  `gorm:"not null;default:0"`
	LikeCount    int64  `gorm:"not null;default:0"`
	DislikeCount int64  `gorm:"not null;default:0"`
	IsPublished  bool   `gorm:"not null;default:false;index:idx_videos_published"`
	UploaderID   uint64 `gorm:"not null;index:idx_videos_uploader"`
	ChannelID    uint64 `gorm:"not null;index:idx_videos_channel"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (VideoModel) TableName() string {
	return "videos"
}
