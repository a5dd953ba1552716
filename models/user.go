package models

import (
	"time"
)

// User is one row per installed client, keyed by the stable
// client-generated device id.
type User struct {
	ID                   uint      `json:"id" gorm:"primaryKey"`
	DeviceID             string    `json:"device_id" gorm:"size:255;uniqueIndex;not null"`
	DeviceToken          *string   `json:"device_token" gorm:"size:512"`
	NotificationTime     string    `json:"notification_time" gorm:"size:5;not null;default:'09:00'"` // HH:MM local time
	Timezone             string    `json:"timezone" gorm:"size:64;not null;default:'America/Chicago'"`
	NotificationsEnabled bool      `json:"notifications_enabled" gorm:"not null;default:true"`
	CreatedAt            time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt            time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
