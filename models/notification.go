package models

import (
	"time"
)

// Notification is an audit row per push dispatch batch.
type Notification struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	QuoteID        uint      `json:"quote_id" gorm:"not null"`
	SentAt         time.Time `json:"sent_at" gorm:"autoCreateTime"`
	RecipientCount int       `json:"recipient_count" gorm:"not null;default:0"`
	SuccessCount   int       `json:"success_count" gorm:"not null;default:0"`

	Quote Quote `json:"-" gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}
