package database

import (
	"gorm.io/gorm"

	"daily-quote-server/models"
)

// ToggleFavorite flips the favorite state of a (user, quote) pair and
// returns the new state
func ToggleFavorite(userID, quoteID uint) (favorited bool, err error) {
	var existing models.UserFavorite
	err = DB.Where("user_id = ? AND quote_id = ?", userID, quoteID).First(&existing).Error

	if err == gorm.ErrRecordNotFound {
		favorite := models.UserFavorite{UserID: userID, QuoteID: quoteID}
		if err := DB.Create(&favorite).Error; err != nil {
			// Concurrent toggle won the insert; treat as favorited
			if isUniqueViolation(err) {
				return true, nil
			}
			return false, err
		}
		return true, nil
	} else if err != nil {
		return false, err
	}

	if err := DB.Delete(&existing).Error; err != nil {
		return true, err
	}
	return false, nil
}

// GetUserFavorites returns a user's favorited quotes, newest favorite first
func GetUserFavorites(userID uint) ([]models.Quote, error) {
	var quotes []models.Quote
	err := DB.Model(&models.Quote{}).
		Joins("JOIN user_favorites ON user_favorites.quote_id = quotes.id").
		Where("user_favorites.user_id = ?", userID).
		Order("user_favorites.created_at DESC").
		Find(&quotes).Error
	return quotes, err
}

// ClearFavorites removes all of a user's favorites and returns how many
// rows were deleted
func ClearFavorites(userID uint) (int64, error) {
	result := DB.Where("user_id = ?", userID).Delete(&models.UserFavorite{})
	return result.RowsAffected, result.Error
}

// RecordDelivery marks a quote as delivered to a user. Returns true on
// the first delivery; false when the pair was already recorded.
func RecordDelivery(userID, quoteID uint) (bool, error) {
	delivery := models.UserDelivery{UserID: userID, QuoteID: quoteID}
	if err := DB.Create(&delivery).Error; err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// QuoteWithFavorite is a quote row annotated with the requesting user's
// favorite state
type QuoteWithFavorite struct {
	models.Quote
	Favorited bool `json:"favorited"`
}

// GetDeliveredQuotes returns quotes previously delivered to the user,
// newest first, annotated with favorite state
func GetDeliveredQuotes(userID uint, limit int) ([]QuoteWithFavorite, error) {
	var quotes []models.Quote
	err := DB.Model(&models.Quote{}).
		Joins("JOIN user_deliveries ON user_deliveries.quote_id = quotes.id").
		Where("user_deliveries.user_id = ?", userID).
		Order("quotes.created_at DESC").
		Limit(limit).
		Find(&quotes).Error
	if err != nil {
		return nil, err
	}

	var favoriteIDs []uint
	err = DB.Model(&models.UserFavorite{}).
		Where("user_id = ?", userID).
		Pluck("quote_id", &favoriteIDs).Error
	if err != nil {
		return nil, err
	}

	favorited := make(map[uint]bool, len(favoriteIDs))
	for _, id := range favoriteIDs {
		favorited[id] = true
	}

	result := make([]QuoteWithFavorite, 0, len(quotes))
	for _, quote := range quotes {
		result = append(result, QuoteWithFavorite{Quote: quote, Favorited: favorited[quote.ID]})
	}
	return result, nil
}
