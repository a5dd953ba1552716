package routes

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"daily-quote-server/database"
	"daily-quote-server/models"
	"daily-quote-server/services"
)

// NotificationHandler serves the per-user preference-time dispatch
// operations
type NotificationHandler struct {
	push *services.PushService
}

// NewNotificationHandler wires the dispatch handlers. A nil push
// service makes the dispatch operations answer 503.
func NewNotificationHandler(push *services.PushService) *NotificationHandler {
	return &NotificationHandler{push: push}
}

// SendDailyNotifications dispatches today's quote to users whose stored
// preference equals the supplied HH:MM value exactly
func (h *NotificationHandler) SendDailyNotifications(c *gin.Context) {
	if h.push == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Push delivery is not configured"})
		return
	}

	var request struct {
		Hour   *int `json:"hour"`
		Minute int  `json:"minute"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if request.Hour == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "hour is required"})
		return
	}
	if *request.Hour < 0 || *request.Hour > 23 || request.Minute < 0 || request.Minute > 59 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid hour or minute"})
		return
	}

	users, err := database.GetUsersForNotificationTime(*request.Hour, request.Minute)
	if err != nil {
		log.Printf("❌ Error loading users for %02d:%02d: %v", *request.Hour, request.Minute, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	h.dispatchToUsers(c, users)
}

// DispatchDueNotifications dispatches today's quote to every user whose
// preferred time matches the current minute in their own timezone
func (h *NotificationHandler) DispatchDueNotifications(c *gin.Context) {
	if h.push == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Push delivery is not configured"})
		return
	}

	users, err := database.GetUsersDueAt(time.Now())
	if err != nil {
		log.Printf("❌ Error loading due users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	h.dispatchToUsers(c, users)
}

func (h *NotificationHandler) dispatchToUsers(c *gin.Context, users []models.User) {
	quote, err := database.GetTodayQuote()
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "No quote assigned for today"})
			return
		}
		log.Printf("❌ Error reading today's quote: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	result, recipients := services.DispatchQuoteToUsers(h.push, quote, users)

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"quote":      quote,
		"matched":    len(users),
		"recipients": recipients,
		"sent":       result.SuccessCount,
		"failed":     result.FailureCount,
	})
}
