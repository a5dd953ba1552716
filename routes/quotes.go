package routes

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"daily-quote-server/database"
	"daily-quote-server/models"
)

// GetAllQuotes lists the quotes previously delivered to a device's user,
// newest delivery first, each annotated with the user's favorite state
func GetAllQuotes(c *gin.Context) {
	userID, ok := userFromDeviceID(c, c.Query("deviceId"))
	if !ok {
		return
	}

	limit := 100
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	quotes, err := database.GetDeliveredQuotes(userID, limit)
	if err != nil {
		log.Printf("❌ Error fetching delivered quotes for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch quotes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"quotes":  quotes,
		"count":   len(quotes),
	})
}

// GetLatestQuote returns the newest quote that was actually delivered
// to at least one device
func GetLatestQuote(c *gin.Context) {
	quote, err := database.GetLatestDeliveredQuote()
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "No quotes have been sent yet"})
			return
		}
		log.Printf("❌ Error fetching latest quote: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch latest quote"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"quote":   quote,
	})
}

// FindQuote looks up a quote by exact text and author
func FindQuote(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	var author *string
	if raw := c.Query("author"); raw != "" {
		author = &raw
	}

	quote, err := database.FindQuote(text, author)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Quote not found"})
			return
		}
		log.Printf("❌ Error finding quote: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to find quote"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"quote":   quote,
	})
}

// SaveQuote stores a quote supplied by a client. Duplicates of an
// existing (text, author) pair are rejected with a conflict.
func SaveQuote(c *gin.Context) {
	var request struct {
		Text          string  `json:"text"`
		Author        *string `json:"author"`
		Biography     *string `json:"biography"`
		Meaning       *string `json:"meaning"`
		Application   *string `json:"application"`
		AuthorSummary *string `json:"authorSummary"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if request.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	quote := models.Quote{
		Text:          request.Text,
		Author:        request.Author,
		Biography:     request.Biography,
		Meaning:       request.Meaning,
		Application:   request.Application,
		AuthorSummary: request.AuthorSummary,
	}

	if err := database.SaveQuote(&quote); err != nil {
		if err == database.ErrDuplicateQuote {
			existing, findErr := database.FindQuote(request.Text, request.Author)
			response := gin.H{
				"error":     "Duplicate quote detected",
				"duplicate": true,
			}
			if findErr == nil {
				response["quote"] = existing
			}
			c.JSON(http.StatusConflict, response)
			return
		}
		log.Printf("❌ Error saving quote: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save quote"})
		return
	}

	log.Printf("✅ Quote saved: id %d", quote.ID)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"quote":   quote,
	})
}

// GetTodayQuote returns the quote assigned to a date (today by default).
// When a deviceId is supplied the read also records the delivery and
// annotates the user's favorite state.
func GetTodayQuote(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = database.DateKey(time.Now())
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, expected YYYY-MM-DD"})
		return
	}

	quote, err := database.GetQuoteOfTheDay(date)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "No quote assigned for this date"})
			return
		}
		log.Printf("❌ Error fetching quote of the day: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch quote of the day"})
		return
	}

	favorited := false
	if deviceID := c.Query("deviceId"); deviceID != "" {
		user, err := database.GetUserByDeviceID(deviceID)
		if err == nil {
			if _, err := database.RecordDelivery(user.ID, quote.ID); err != nil {
				log.Printf("⚠️ Could not record delivery for user %d: %v", user.ID, err)
			}
			favorites, err := database.GetUserFavorites(user.ID)
			if err == nil {
				for _, favorite := range favorites {
					if favorite.ID == quote.ID {
						favorited = true
						break
					}
				}
			}
		} else if err != gorm.ErrRecordNotFound {
			log.Printf("⚠️ Error looking up device %s: %v", deviceID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"date":      date,
		"quote":     quote,
		"favorited": favorited,
	})
}
