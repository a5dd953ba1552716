package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"daily-quote-server/config"
	"daily-quote-server/types"
	"daily-quote-server/utils"
)

// AdminAuthMiddleware validates admin JWT tokens
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := adminFromRequest(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid token",
				"message": "Token is invalid or expired",
			})
			c.Abort()
			return
		}

		if claims.Email != config.AppConfig.Admin.Email {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}

		c.Set("admin_email", claims.Email)
		c.Next()
	}
}

// AdminOrAPIKeyMiddleware allows either an admin JWT or the automation
// API key (x-api-key header). The automation path is how the external
// scheduler triggers generation and sending.
func AdminOrAPIKeyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("x-api-key")
		secret := config.AppConfig.Admin.APISecretKey
		if apiKey != "" && secret != "" &&
			subtle.ConstantTimeCompare([]byte(apiKey), []byte(secret)) == 1 {
			c.Set("sent_by", "api-key")
			c.Next()
			return
		}

		claims, ok := adminFromRequest(c)
		if !ok || claims.Email != config.AppConfig.Admin.Email {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Set("admin_email", claims.Email)
		c.Set("sent_by", claims.Email)
		c.Next()
	}
}

// CronAuthMiddleware gates scheduler-invoked routes behind the shared
// cron secret
func CronAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := config.AppConfig.Cron.Secret
		authHeader := c.GetHeader("Authorization")
		if secret == "" || subtle.ConstantTimeCompare([]byte(authHeader), []byte("Bearer "+secret)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func adminFromRequest(c *gin.Context) (*types.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return nil, false
	}

	parsed, err := utils.VerifyToken(tokenString)
	if err != nil {
		return nil, false
	}
	return parsed, true
}
