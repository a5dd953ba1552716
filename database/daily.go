package database

import (
	"time"

	"gorm.io/gorm"

	"daily-quote-server/models"
)

// DateKey formats a timestamp as the UTC calendar date used to key
// daily quote assignments
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// SetDailyQuote assigns a quote to a date. Concurrent assignment for
// the same date resolves last-write-wins.
func SetDailyQuote(date string, quoteID uint) error {
	var existing models.DailyQuote
	err := DB.Where("date = ?", date).First(&existing).Error

	if err == gorm.ErrRecordNotFound {
		assignment := models.DailyQuote{Date: date, QuoteID: quoteID}
		if err := DB.Create(&assignment).Error; err != nil {
			if isUniqueViolation(err) {
				// Lost the race; overwrite the winner's row
				return DB.Model(&models.DailyQuote{}).
					Where("date = ?", date).
					Update("quote_id", quoteID).Error
			}
			return err
		}
		return nil
	} else if err != nil {
		return err
	}

	existing.QuoteID = quoteID
	return DB.Save(&existing).Error
}

// SetTodayQuote assigns a quote to the current UTC date
func SetTodayQuote(quoteID uint) error {
	return SetDailyQuote(DateKey(time.Now()), quoteID)
}

// GetQuoteOfTheDay returns the quote assigned to a specific date
func GetQuoteOfTheDay(date string) (*models.Quote, error) {
	var assignment models.DailyQuote
	err := DB.Preload("Quote").Where("date = ?", date).First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment.Quote, nil
}

// GetTodayQuote returns the quote assigned to the current UTC date
func GetTodayQuote() (*models.Quote, error) {
	return GetQuoteOfTheDay(DateKey(time.Now()))
}
