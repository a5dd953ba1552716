package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"daily-quote-server/database"
)

// RegisterUser registers or updates a user keyed by device id
func RegisterUser(c *gin.Context) {
	var request struct {
		DeviceID         string  `json:"deviceId"`
		DeviceToken      *string `json:"deviceToken"`
		NotificationTime *string `json:"notificationTime"`
		Timezone         *string `json:"timezone"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if request.DeviceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "deviceId is required"})
		return
	}

	user, err := database.RegisterUser(request.DeviceID, request.DeviceToken, request.NotificationTime, request.Timezone)
	if err != nil {
		log.Printf("❌ Error registering user %s: %v", request.DeviceID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	log.Printf("✅ User registered: device %s, notify at %s %s", user.DeviceID, user.NotificationTime, user.Timezone)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
	})
}

// UpdateUserPreferences applies a partial preference update to an
// existing user
func UpdateUserPreferences(c *gin.Context) {
	var request struct {
		DeviceID             string  `json:"deviceId"`
		NotificationTime     *string `json:"notificationTime"`
		Timezone             *string `json:"timezone"`
		DeviceToken          *string `json:"deviceToken"`
		NotificationsEnabled *bool   `json:"notificationsEnabled"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if request.DeviceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "deviceId is required"})
		return
	}

	user, err := database.UpdateUserPreferences(request.DeviceID, database.UserPreferences{
		NotificationTime:     request.NotificationTime,
		Timezone:             request.Timezone,
		DeviceToken:          request.DeviceToken,
		NotificationsEnabled: request.NotificationsEnabled,
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		log.Printf("❌ Error updating preferences for %s: %v", request.DeviceID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update preferences"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
	})
}
