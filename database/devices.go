package database

import (
	"log"

	"gorm.io/gorm"

	"daily-quote-server/models"
)

// RegisterDeviceToken upserts a device token by token value. A
// previously deactivated token is reactivated.
func RegisterDeviceToken(token string, userID *string, platform string) error {
	if platform == "" {
		platform = "ios"
	}

	var existing models.DeviceToken
	err := DB.Where("token = ?", token).First(&existing).Error

	if err == gorm.ErrRecordNotFound {
		device := models.DeviceToken{
			Token:    token,
			UserID:   userID,
			Platform: platform,
			Active:   true,
		}
		return DB.Create(&device).Error
	} else if err != nil {
		return err
	}

	existing.UserID = userID
	existing.Platform = platform
	existing.Active = true
	return DB.Save(&existing).Error
}

// GetActiveDeviceTokens returns every active broadcast target
func GetActiveDeviceTokens() ([]models.DeviceToken, error) {
	var tokens []models.DeviceToken
	err := DB.Where("active = ?", true).Find(&tokens).Error
	return tokens, err
}

// DeactivateDeviceTokens soft-deactivates tokens the push provider
// reported as no longer registered. Tokens are never deleted.
func DeactivateDeviceTokens(tokens []string) {
	if len(tokens) == 0 {
		return
	}
	err := DB.Model(&models.DeviceToken{}).
		Where("token IN ?", tokens).
		Update("active", false).Error
	if err != nil {
		log.Printf("❌ Error deactivating %d stale device tokens: %v", len(tokens), err)
		return
	}
	log.Printf("🧹 Deactivated %d unregistered device tokens", len(tokens))
}

// CountDeviceTokens returns total and active device token counts
func CountDeviceTokens() (total, active int64, err error) {
	if err = DB.Model(&models.DeviceToken{}).Count(&total).Error; err != nil {
		return
	}
	err = DB.Model(&models.DeviceToken{}).Where("active = ?", true).Count(&active).Error
	return
}
