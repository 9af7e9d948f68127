package model

import "time"

// ChannelModel mirrors the 'channels' table.
type ChannelModel struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"type:varchar(255);not null"`
	Description string `gorm:"type:text"`
	OwnerID     uint64 `gorm:"not null;index:idx_channels_owner"`
	CreatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ChannelModel) TableName() string {
	return "channels"
}
