package routes

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"daily-quote-server/config"
	"daily-quote-server/database"
	"daily-quote-server/utils"
)

// AdminLogin authenticates the configured admin and issues a JWT
func AdminLogin(c *gin.Context) {
	var request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	adminEmail := config.AppConfig.Admin.Email
	adminHash := config.AppConfig.Admin.PasswordHash
	if adminEmail == "" || adminHash == "" {
		log.Printf("⚠️ Admin login attempted but admin credentials are not configured")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if request.Email != adminEmail || !utils.CheckPasswordHash(request.Password, adminHash) {
		log.Printf("🚫 Failed admin login attempt for %s from %s", request.Email, c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(request.Email)
	if err != nil {
		log.Printf("❌ Error generating admin token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	log.Printf("✅ Admin login: %s", request.Email)
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"token":        token,
		"expires_in_h": config.AppConfig.JWT.ExpiryHours,
	})
}

// GetAdminQuotes lists quotes for the dashboard, optionally ordered by
// favorite count
func GetAdminQuotes(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	quotes, err := database.GetQuotesSorted(limit, c.Query("sort"))
	if err != nil {
		log.Printf("❌ Error fetching admin quotes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch quotes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"quotes":  quotes,
		"count":   len(quotes),
	})
}

// GetStats returns dashboard counters
func GetStats(c *gin.Context) {
	stats, err := database.GetStats()
	if err != nil {
		log.Printf("❌ Error collecting stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to collect stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   stats,
	})
}

// GetNotificationLog returns recent dispatch audit rows
func GetNotificationLog(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	records, err := database.GetNotificationLog(limit)
	if err != nil {
		log.Printf("❌ Error fetching notification log: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notification log"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"notifications": records,
		"count":         len(records),
	})
}

// RunMigration applies schema migrations on demand
func RunMigration(c *gin.Context) {
	if err := database.Migrate(); err != nil {
		log.Printf("❌ Migration failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Migration failed"})
		return
	}

	log.Printf("✅ Migration completed via admin request")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Migration completed",
	})
}

// CleanupDuplicates removes stored quotes that collide on the
// normalized (text, author) pair, keeping the oldest copy of each
func CleanupDuplicates(c *gin.Context) {
	duplicateSets, quotesDeleted, err := database.CleanupDuplicateQuotes()
	if err != nil {
		log.Printf("❌ Duplicate cleanup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Duplicate cleanup failed"})
		return
	}

	log.Printf("🧹 Duplicate cleanup: %d sets, %d quotes removed", duplicateSets, quotesDeleted)
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"duplicate_sets": duplicateSets,
		"quotes_deleted": quotesDeleted,
	})
}
