package database

import (
	"errors"
	"log"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"daily-quote-server/models"
)

// ErrDuplicateQuote is returned when a save collides with an existing
// quote, either through the advisory check or the unique index.
var ErrDuplicateQuote = errors.New("duplicate quote")

// GetQuotes returns the most recent quotes, newest first
func GetQuotes(limit int) ([]models.Quote, error) {
	var quotes []models.Quote
	err := DB.Order("created_at DESC").Limit(limit).Find(&quotes).Error
	return quotes, err
}

// GetQuotesSorted returns quotes ordered by favorite count or creation time
func GetQuotesSorted(limit int, sortBy string) ([]models.Quote, error) {
	var quotes []models.Quote

	if sortBy == "favorites" {
		err := DB.Model(&models.Quote{}).
			Select("quotes.*, COUNT(user_favorites.id) AS favorite_count").
			Joins("LEFT JOIN user_favorites ON user_favorites.quote_id = quotes.id").
			Group("quotes.id").
			Order("favorite_count DESC, quotes.created_at DESC").
			Limit(limit).
			Find(&quotes).Error
		return quotes, err
	}

	return GetQuotes(limit)
}

// SaveQuote inserts a quote. A unique-index collision on the normalized
// (text, author) pair surfaces as ErrDuplicateQuote.
func SaveQuote(quote *models.Quote) error {
	if err := DB.Create(quote).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateQuote
		}
		return err
	}
	return nil
}

// CheckDuplicateQuote reports whether a candidate (text, author) pair
// already exists. Text is compared trimmed and case-insensitively;
// missing, null, and empty authors are treated as the same author.
func CheckDuplicateQuote(text string, author *string) (bool, error) {
	var count int64
	err := DB.Model(&models.Quote{}).
		Where("text_normalized = ? AND author_normalized = ?",
			models.NormalizeQuoteText(text), models.NormalizeAuthor(author)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindQuoteNormalized looks up a quote by its normalized (text, author)
// pair, the same comparison the duplicate check uses
func FindQuoteNormalized(text string, author *string) (*models.Quote, error) {
	var quote models.Quote
	err := DB.Where("text_normalized = ? AND author_normalized = ?",
		models.NormalizeQuoteText(text), models.NormalizeAuthor(author)).
		First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// FindQuote looks up a quote by exact text and author
func FindQuote(text string, author *string) (*models.Quote, error) {
	var quote models.Quote
	err := DB.Where("text = ? AND COALESCE(author, '') = ?", text, models.NormalizeAuthor(author)).
		First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// GetQuoteByID returns one quote by surrogate id
func GetQuoteByID(id uint) (*models.Quote, error) {
	var quote models.Quote
	if err := DB.First(&quote, id).Error; err != nil {
		return nil, err
	}
	return &quote, nil
}

// MarkQuoteAsSent stamps the quote's sent_at timestamp and records who
// triggered the send
func MarkQuoteAsSent(quoteID uint, sentBy string) error {
	updates := map[string]interface{}{
		"sent_at": gorm.Expr("CURRENT_TIMESTAMP"),
	}
	if sentBy != "" {
		updates["sent_by"] = sentBy
	}
	return DB.Model(&models.Quote{}).
		Where("id = ?", quoteID).
		Updates(updates).Error
}

// GetLatestDeliveredQuote returns the newest quote that has at least one
// successful dispatch recorded against it
func GetLatestDeliveredQuote() (*models.Quote, error) {
	var quote models.Quote
	err := DB.Where(
		"EXISTS (SELECT 1 FROM notifications n WHERE n.quote_id = quotes.id AND n.success_count > 0)").
		Order("created_at DESC").
		First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// CleanupDuplicateQuotes removes newer copies of quotes sharing a
// normalized (text, author) pair, keeping the oldest row of each group.
// Favorites and deliveries pointing at removed copies go first.
// Postgres-only: relies on ARRAY_AGG and ANY.
func CleanupDuplicateQuotes() (duplicateSets int, quotesDeleted int64, err error) {
	var groups []struct {
		TextNormalized   string        `gorm:"column:text_normalized"`
		AuthorNormalized string        `gorm:"column:author_normalized"`
		IDs              pq.Int64Array `gorm:"column:ids;type:bigint[]"`
	}

	err = DB.Raw(
		"SELECT text_normalized, author_normalized, ARRAY_AGG(id ORDER BY created_at ASC) AS ids " +
			"FROM quotes GROUP BY text_normalized, author_normalized HAVING COUNT(*) > 1").
		Scan(&groups).Error
	if err != nil {
		return 0, 0, err
	}

	for _, group := range groups {
		if len(group.IDs) < 2 {
			continue
		}
		// Keep the oldest copy
		idsToDelete := group.IDs[1:]

		if err := DB.Exec("DELETE FROM user_favorites WHERE quote_id = ANY(?)", pq.Array(idsToDelete)).Error; err != nil {
			return duplicateSets, quotesDeleted, err
		}
		if err := DB.Exec("DELETE FROM user_deliveries WHERE quote_id = ANY(?)", pq.Array(idsToDelete)).Error; err != nil {
			return duplicateSets, quotesDeleted, err
		}

		result := DB.Exec("DELETE FROM quotes WHERE id = ANY(?)", pq.Array(idsToDelete))
		if result.Error != nil {
			return duplicateSets, quotesDeleted, result.Error
		}

		duplicateSets++
		quotesDeleted += result.RowsAffected
		log.Printf("🧹 Removed %d duplicate copies of %q", result.RowsAffected, group.TextNormalized)
	}

	return duplicateSets, quotesDeleted, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
