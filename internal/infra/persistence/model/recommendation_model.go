package model

import "time"

// RecommendationModel mirrors the 'recommendations' table.
type RecommendationModel struct {
	ID        uint64  `gorm:"primaryKey;autoIncrement"`
	UserID    uint64  `gorm:"not null;index:idx_recommendations_user"`
	VideoID   uint64  `gorm:"not null;index:idx_recommendations_video"`
	ChannelID uint64  `gorm:"not null"`
	Score     float64 `gorm:"not null;default:0"`
	Reason    string  `gorm:"type:varchar(100)"`
	Details   string  `gorm:"type:text"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (RecommendationModel) TableName() string {
	return "recommendations"
}
