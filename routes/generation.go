package routes

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"daily-quote-server/database"
	"daily-quote-server/models"
	"daily-quote-server/services"
)

// Generator is the slice of the quote generator the handlers need
type Generator interface {
	Generate(ctx context.Context, avoid []models.Quote) (*services.ParsedQuote, error)
}

// QuoteHandler serves generation and broadcast operations. Both
// collaborators are injected at startup; neither is created lazily.
type QuoteHandler struct {
	generator Generator
	push      *services.PushService
}

// NewQuoteHandler wires the generation and broadcast handlers.
// Either collaborator may be nil when the corresponding credential is
// absent; the affected operations then answer 503.
func NewQuoteHandler(generator Generator, push *services.PushService) *QuoteHandler {
	return &QuoteHandler{generator: generator, push: push}
}

// avoidListLimit caps how many recent quotes feed the do-not-repeat list
const avoidListLimit = 100

var errGeneratorUnavailable = errors.New("quote generation is not configured")

// GenerateQuote generates one new quote, rejects duplicates of stored
// quotes, and stores the result
func (h *QuoteHandler) GenerateQuote(c *gin.Context) {
	quote, generated, err := h.generateStoredQuote(c)
	if err != nil {
		respondGenerationError(c, err)
		return
	}
	if !generated {
		c.JSON(http.StatusConflict, gin.H{
			"error":     "Duplicate quote detected",
			"duplicate": true,
			"quote":     quote,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"quote":   quote,
	})
}

// SendQuote broadcasts a stored quote to every active device token
func (h *QuoteHandler) SendQuote(c *gin.Context) {
	if h.push == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Push delivery is not configured"})
		return
	}

	var request struct {
		QuoteID uint `json:"quoteId"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if request.QuoteID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quoteId is required"})
		return
	}

	quote, err := database.GetQuoteByID(request.QuoteID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Quote not found"})
			return
		}
		log.Printf("❌ Error fetching quote %d: %v", request.QuoteID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	result, recipients, err := h.broadcast(quote, c.GetString("sent_by"))
	if err != nil {
		log.Printf("❌ Broadcast failed for quote %d: %v", quote.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send quote"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"quote":      quote,
		"recipients": recipients,
		"sent":       result.SuccessCount,
		"failed":     result.FailureCount,
	})
}

// EnsureDailyQuote assigns a quote to today if none is assigned yet.
// Re-invocation on the same day is a no-op.
func (h *QuoteHandler) EnsureDailyQuote(c *gin.Context) {
	if existing, err := database.GetTodayQuote(); err == nil {
		c.JSON(http.StatusOK, gin.H{
			"success":         true,
			"alreadyAssigned": true,
			"quote":           existing,
		})
		return
	} else if err != gorm.ErrRecordNotFound {
		log.Printf("❌ Error reading today's quote: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	quote, generated, err := h.generateStoredQuote(c)
	if err != nil {
		respondGenerationError(c, err)
		return
	}
	if !generated {
		log.Printf("⚠️ Generation repeated stored quote %d, reusing it for today", quote.ID)
	}

	if err := database.SetTodayQuote(quote.ID); err != nil {
		log.Printf("❌ Error assigning today's quote: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign today's quote"})
		return
	}

	log.Printf("✅ Assigned quote %d as today's quote", quote.ID)
	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"alreadyAssigned": false,
		"quote":           quote,
	})
}

// GenerateAndSendQuote generates a fresh quote and broadcasts it to
// every active device token in one step
func (h *QuoteHandler) GenerateAndSendQuote(c *gin.Context) {
	if h.push == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Push delivery is not configured"})
		return
	}

	quote, generated, err := h.generateStoredQuote(c)
	if err != nil {
		respondGenerationError(c, err)
		return
	}
	if !generated {
		log.Printf("🚫 Generation repeated stored quote %d, skipping send", quote.ID)
		c.JSON(http.StatusOK, gin.H{
			"success":   false,
			"message":   "Duplicate quote detected, skipping send",
			"duplicate": true,
			"quote":     quote,
		})
		return
	}

	sentBy := c.GetString("sent_by")
	if sentBy == "" {
		sentBy = "cron"
	}

	result, recipients, err := h.broadcast(quote, sentBy)
	if err != nil {
		log.Printf("❌ Broadcast failed for quote %d: %v", quote.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send quote"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"quote":      quote,
		"recipients": recipients,
		"sent":       result.SuccessCount,
		"failed":     result.FailureCount,
	})
}

// generateStoredQuote asks the model for a quote and stores it. When the
// model repeats a stored quote, the stored copy is returned with
// generated=false and nothing new is written; each caller decides how to
// treat the repeat.
func (h *QuoteHandler) generateStoredQuote(ctx context.Context) (*models.Quote, bool, error) {
	if h.generator == nil {
		return nil, false, errGeneratorUnavailable
	}

	avoid, err := database.GetQuotes(avoidListLimit)
	if err != nil {
		return nil, false, fmt.Errorf("loading avoid list: %w", err)
	}

	parsed, err := h.generator.Generate(ctx, avoid)
	if err != nil {
		return nil, false, fmt.Errorf("generating quote: %w", err)
	}

	duplicate, err := database.CheckDuplicateQuote(parsed.Text, parsed.Author)
	if err != nil {
		return nil, false, fmt.Errorf("checking for duplicate: %w", err)
	}
	if duplicate {
		existing, err := database.FindQuoteNormalized(parsed.Text, parsed.Author)
		if err != nil {
			return nil, false, fmt.Errorf("loading duplicate quote: %w", err)
		}
		return existing, false, nil
	}

	quote := &models.Quote{
		Text:          parsed.Text,
		Author:        parsed.Author,
		Biography:     parsed.Biography,
		Meaning:       parsed.Meaning,
		Application:   parsed.Application,
		AuthorSummary: parsed.AuthorSummary,
	}

	if err := database.SaveQuote(quote); err != nil {
		// The unique index can still fire if two generations race past
		// the advisory check
		if err == database.ErrDuplicateQuote {
			existing, findErr := database.FindQuoteNormalized(parsed.Text, parsed.Author)
			if findErr != nil {
				return nil, false, fmt.Errorf("loading duplicate quote: %w", findErr)
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("saving quote: %w", err)
	}

	return quote, true, nil
}

func respondGenerationError(c *gin.Context, err error) {
	if errors.Is(err, errGeneratorUnavailable) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Quote generation is not configured"})
		return
	}
	log.Printf("❌ Quote generation failed: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Quote generation failed"})
}

// broadcast sends a quote to every active device token, stamps the
// quote, records the audit row, and retires unregistered tokens
func (h *QuoteHandler) broadcast(quote *models.Quote, sentBy string) (services.DispatchResult, int, error) {
	tokens, err := database.GetActiveDeviceTokens()
	if err != nil {
		return services.DispatchResult{}, 0, err
	}

	values := make([]string, 0, len(tokens))
	for _, token := range tokens {
		values = append(values, token.Token)
	}

	title, body, data := services.QuoteNotificationContent(quote)
	result := h.push.SendToTokens(values, title, body, data)

	database.DeactivateDeviceTokens(result.UnregisteredTokens)

	if err := database.MarkQuoteAsSent(quote.ID, sentBy); err != nil {
		log.Printf("⚠️ Could not stamp quote %d as sent: %v", quote.ID, err)
	}
	if err := database.SaveNotificationRecord(quote.ID, len(values), result.SuccessCount); err != nil {
		log.Printf("⚠️ Could not record dispatch for quote %d: %v", quote.ID, err)
	}

	return result, len(values), nil
}
