package model

import "time"

// UserModel mirrors the 'users' table. Numeric primary keys come from the
// database sequence. The single live refresh token hash lives on this row:
// one session per account.
type UserModel struct {
	ID               uint64  `gorm:"primaryKey;autoIncrement"`
	Email            string  `gorm:"type:varchar(255);uniqueIndex:idx_users_email;not null"`
	Username         string  `gorm:"type:varchar(100);uniqueIndex:idx_users_username;not null"`
	FullName         string  `gorm:"type:varchar(255)"`
	AvatarURL        string  `gorm:"type:varchar(512)"`
	PasswordHash     string  `gorm:"type:varchar(255)"`
	IsActive         bool    `gorm:"not null;default:true"`
	IsVerified       bool    `gorm:"not null;default:false"`
	GoogleID         *string `gorm:"type:varchar(255);uniqueIndex:idx_users_google_id"`
	Provider         string  `gorm:"type:varchar(50);not null;default:'email'"`
	RefreshTokenHash string  `gorm:"type:varchar(64)"`
	LastLogin        *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
