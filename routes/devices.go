package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"daily-quote-server/database"
)

// RegisterDevice registers a push token as a broadcast target
func RegisterDevice(c *gin.Context) {
	var request struct {
		Token    string  `json:"token"`
		UserID   *string `json:"userId"`
		Platform string  `json:"platform"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if request.Token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}

	if err := database.RegisterDeviceToken(request.Token, request.UserID, request.Platform); err != nil {
		log.Printf("❌ Error registering device token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register device token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Device token registered successfully",
	})
}
