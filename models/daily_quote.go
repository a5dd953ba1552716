package models

import (
	"time"
)

// DailyQuote assigns a quote to a calendar date (YYYY-MM-DD, UTC).
// One row per date; concurrent assignment resolves last-write-wins.
type DailyQuote struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Date      string    `json:"date" gorm:"size:10;uniqueIndex;not null"`
	QuoteID   uint      `json:"quote_id" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	Quote Quote `json:"quote" gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the DailyQuote model
func (DailyQuote) TableName() string {
	return "daily_quotes"
}
