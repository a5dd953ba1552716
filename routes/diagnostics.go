package routes

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"daily-quote-server/config"
	"daily-quote-server/database"
	"daily-quote-server/utils"
)

// HealthCheck reports liveness and database reachability
func HealthCheck(c *gin.Context) {
	status := "ok"
	dbStatus := "ok"

	sqlDB, err := database.DB.DB()
	if err != nil || sqlDB.Ping() != nil {
		status = "degraded"
		dbStatus = "unreachable"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"database":  dbStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Ping is a trivial reachability probe
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "pong",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Debug reports which credentials are configured without revealing them
func Debug(c *gin.Context) {
	cfg := config.AppConfig
	c.JSON(http.StatusOK, gin.H{
		"database_configured": cfg.Database.URL != "",
		"openai_configured":   cfg.OpenAI.APIKey != "",
		"fcm_configured":      cfg.FCM.ServerKey != "",
		"admin_configured":    cfg.Admin.Email != "" && cfg.Admin.PasswordHash != "",
		"cron_configured":     cfg.Cron.Secret != "",
		"api_key_configured":  cfg.Admin.APISecretKey != "",
		"jobs_enabled":        cfg.Jobs.Enabled,
		"model":               cfg.OpenAI.Model,
	})
}

// InitDatabase applies schema migrations. Safe to call repeatedly.
func InitDatabase(c *gin.Context) {
	if err := database.Migrate(); err != nil {
		log.Printf("❌ Database initialization failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database initialization failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database initialized",
	})
}

// NextQuoteTime reports when the external scheduler will next generate
// a quote
func NextQuoteTime(c *gin.Context) {
	now := time.Now().UTC()
	next := utils.NextGenerationTime(now)
	secondsUntil := int(next.Sub(now).Seconds())
	if secondsUntil < 0 {
		secondsUntil = 0
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"nextQuoteTime":    next.Format(time.RFC3339),
		"secondsUntilNext": secondsUntil,
		"timeRemaining":    (time.Duration(secondsUntil) * time.Second).String(),
		"cronExpression":   "0 */2 * * *",
	})
}
