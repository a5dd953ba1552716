package models

import (
	"time"
)

// DeviceToken is a broadcast push target, upserted by token value.
// Tokens are deactivated rather than deleted.
type DeviceToken struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Token     string    `json:"token" gorm:"size:512;uniqueIndex;not null"`
	UserID    *string   `json:"user_id" gorm:"size:255"`
	Platform  string    `json:"platform" gorm:"size:50;not null;default:'ios'"` // ios, android
	Active    bool      `json:"active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the DeviceToken model
func (DeviceToken) TableName() string {
	return "device_tokens"
}
