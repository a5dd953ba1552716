package services

import (
	"fmt"
	"log"

	"daily-quote-server/database"
	"daily-quote-server/models"
)

// QuoteNotificationContent builds the push title, body, and data
// payload for a quote
func QuoteNotificationContent(quote *models.Quote) (title, body string, data map[string]string) {
	title = "Daily Quote"
	if quote.Author != nil && *quote.Author != "" {
		title = *quote.Author
	}
	body = quote.Text

	data = map[string]string{
		"type":       "daily_quote",
		"quoteId":    fmt.Sprintf("%d", quote.ID),
		"quote_text": quote.Text,
	}
	addOptional := func(key string, value *string) {
		if value != nil && *value != "" {
			data[key] = *value
		}
	}
	addOptional("quote_author", quote.Author)
	addOptional("quote_biography", quote.Biography)
	addOptional("quote_meaning", quote.Meaning)
	addOptional("quote_application", quote.Application)
	addOptional("quote_author_summary", quote.AuthorSummary)

	return title, body, data
}

// DispatchQuoteToUsers sends one quote to each user's device token,
// skipping users who already received it today. Shared by the HTTP
// handlers and the background scheduler.
func DispatchQuoteToUsers(push *PushService, quote *models.Quote, users []models.User) (DispatchResult, int) {
	var tokens []string
	for _, user := range users {
		if user.DeviceToken == nil || *user.DeviceToken == "" {
			continue
		}

		first, err := database.RecordDelivery(user.ID, quote.ID)
		if err != nil {
			log.Printf("⚠️ Could not record delivery for user %d: %v", user.ID, err)
			continue
		}
		if !first {
			// Already received today's quote through another path
			continue
		}

		tokens = append(tokens, *user.DeviceToken)
	}

	if len(tokens) == 0 {
		log.Printf("📨 No users due for quote %d", quote.ID)
		return DispatchResult{}, 0
	}

	title, body, data := QuoteNotificationContent(quote)
	result := push.SendToTokens(tokens, title, body, data)

	database.DeactivateDeviceTokens(result.UnregisteredTokens)

	if err := database.SaveNotificationRecord(quote.ID, len(tokens), result.SuccessCount); err != nil {
		log.Printf("⚠️ Could not record dispatch for quote %d: %v", quote.ID, err)
	}

	log.Printf("📨 Dispatched quote %d to %d users (%d ok, %d failed)",
		quote.ID, len(tokens), result.SuccessCount, result.FailureCount)
	return result, len(tokens)
}
