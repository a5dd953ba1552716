package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"daily-quote-server/database"
)

func userFromDeviceID(c *gin.Context, deviceID string) (uint, bool) {
	if deviceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "deviceId is required"})
		return 0, false
	}

	user, err := database.GetUserByDeviceID(deviceID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return 0, false
		}
		log.Printf("❌ Error looking up device %s: %v", deviceID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return 0, false
	}
	return user.ID, true
}

// ToggleFavorite flips a user's favorite state for a quote
func ToggleFavorite(c *gin.Context) {
	var request struct {
		DeviceID string `json:"deviceId"`
		QuoteID  uint   `json:"quoteId"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if request.QuoteID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quoteId is required"})
		return
	}

	userID, ok := userFromDeviceID(c, request.DeviceID)
	if !ok {
		return
	}

	if _, err := database.GetQuoteByID(request.QuoteID); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Quote not found"})
			return
		}
		log.Printf("❌ Error fetching quote %d: %v", request.QuoteID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	favorited, err := database.ToggleFavorite(userID, request.QuoteID)
	if err != nil {
		log.Printf("❌ Error toggling favorite for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle favorite"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"favorited": favorited,
	})
}

// GetFavorites lists a user's favorited quotes, newest favorite first
func GetFavorites(c *gin.Context) {
	userID, ok := userFromDeviceID(c, c.Query("deviceId"))
	if !ok {
		return
	}

	quotes, err := database.GetUserFavorites(userID)
	if err != nil {
		log.Printf("❌ Error fetching favorites for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch favorites"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"favorites": quotes,
		"count":     len(quotes),
	})
}

// ClearFavorites removes all of a user's favorites
func ClearFavorites(c *gin.Context) {
	var request struct {
		DeviceID string `json:"deviceId"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := userFromDeviceID(c, request.DeviceID)
	if !ok {
		return
	}

	cleared, err := database.ClearFavorites(userID)
	if err != nil {
		log.Printf("❌ Error clearing favorites for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear favorites"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"cleared": cleared,
	})
}
