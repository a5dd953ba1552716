package models

import (
	"time"
)

// UserFavorite marks a quote as favorited by a user. Existence of the
// row is the toggle state.
type UserFavorite struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_favorites_pair,priority:1"`
	QuoteID   uint      `json:"quote_id" gorm:"not null;uniqueIndex:idx_user_favorites_pair,priority:2"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	User  User  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Quote Quote `json:"-" gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the UserFavorite model
func (UserFavorite) TableName() string {
	return "user_favorites"
}

// UserDelivery records that a quote was shown to a user. The "all
// quotes" listing is scoped to delivered quotes through these rows.
type UserDelivery struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_deliveries_pair,priority:1"`
	QuoteID   uint      `json:"quote_id" gorm:"not null;uniqueIndex:idx_user_deliveries_pair,priority:2"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	User  User  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Quote Quote `json:"-" gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the UserDelivery model
func (UserDelivery) TableName() string {
	return "user_deliveries"
}
