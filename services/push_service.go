package services

import (
	"fmt"
	"log"

	"github.com/appleboy/go-fcm"
)

// Sender is the slice of the FCM client the dispatcher needs
type Sender interface {
	Send(msg *fcm.Message) (*fcm.Response, error)
}

// PushService sends push messages through FCM. It is constructed once
// in main and passed by reference; there is no lazily-initialized
// shared client.
type PushService struct {
	client Sender
}

// DispatchResult reports one batch's outcome. A token failing never
// aborts the rest of the batch.
type DispatchResult struct {
	SuccessCount       int
	FailureCount       int
	UnregisteredTokens []string
}

// NewPushService creates a push service from an FCM server key
func NewPushService(serverKey string) (*PushService, error) {
	if serverKey == "" {
		return nil, fmt.Errorf("FCM server key is required")
	}
	client, err := fcm.NewClient(serverKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create FCM client: %w", err)
	}
	return &PushService{client: client}, nil
}

// NewPushServiceWithClient creates a push service over an existing sender
func NewPushServiceWithClient(client Sender) *PushService {
	return &PushService{client: client}
}

// SendToTokens sends one message per token sequentially, counting
// successes and failures independently. No retry, no batching; a slow
// or failing token only costs its own send.
func (p *PushService) SendToTokens(tokens []string, title, body string, data map[string]string) DispatchResult {
	var result DispatchResult

	payload := make(map[string]interface{}, len(data))
	for key, value := range data {
		payload[key] = value
	}

	for _, token := range tokens {
		msg := &fcm.Message{
			To:       token,
			Priority: "high",
			Data:     payload,
			Notification: &fcm.Notification{
				Title: title,
				Body:  body,
				Sound: "default",
			},
		}

		resp, err := p.client.Send(msg)
		if err != nil {
			result.FailureCount++
			log.Printf("❌ Error sending notification to token %s: %v", truncate(token, 20), err)
			continue
		}

		if resp != nil && len(resp.Results) > 0 && resp.Results[0].Error != nil {
			result.FailureCount++
			if resp.Results[0].Unregistered() {
				result.UnregisteredTokens = append(result.UnregisteredTokens, token)
			}
			log.Printf("❌ Push rejected for token %s: %v", truncate(token, 20), resp.Results[0].Error)
			continue
		}

		result.SuccessCount++
	}

	log.Printf("📊 Push dispatch: %d success, %d failed of %d tokens",
		result.SuccessCount, result.FailureCount, len(tokens))
	return result
}
