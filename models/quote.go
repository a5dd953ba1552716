package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type Quote struct {
	ID            uint    `json:"id" gorm:"primaryKey"`
	Text          string  `json:"text" gorm:"type:text;not null"`
	Author        *string `json:"author" gorm:"size:255"`
	Biography     *string `json:"biography" gorm:"type:text"`
	Meaning       *string `json:"meaning" gorm:"type:text"`
	Application   *string `json:"application" gorm:"type:text"`
	AuthorSummary *string `json:"author_summary" gorm:"type:text"`

	// Normalized columns back the schema-level uniqueness guarantee.
	// Duplicate detection on raw text alone is advisory only.
	TextNormalized   string `json:"-" gorm:"type:text;uniqueIndex:idx_quotes_text_author,priority:1"`
	AuthorNormalized string `json:"-" gorm:"size:255;uniqueIndex:idx_quotes_text_author,priority:2"`

	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	SentAt    *time.Time `json:"sent_at"`
	SentBy    *string    `json:"sent_by" gorm:"size:255"`
}

// TableName specifies the table name for the Quote model
func (Quote) TableName() string {
	return "quotes"
}

// BeforeSave keeps the normalized uniqueness columns in sync with the raw fields
func (q *Quote) BeforeSave(tx *gorm.DB) error {
	q.TextNormalized = NormalizeQuoteText(q.Text)
	q.AuthorNormalized = NormalizeAuthor(q.Author)
	return nil
}

// NormalizeQuoteText trims and lowercases quote text for duplicate comparison
func NormalizeQuoteText(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// NormalizeAuthor trims an optional author. Missing, empty, and
// whitespace-only authors all normalize to the empty string.
func NormalizeAuthor(author *string) string {
	if author == nil {
		return ""
	}
	return strings.TrimSpace(*author)
}
