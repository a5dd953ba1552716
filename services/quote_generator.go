package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"daily-quote-server/models"
)

const quotePrompt = `You are a helpful assistant that provides inspiring, profound, or funny quotes with detailed analysis. Return a quote that is either inspiring, deeply profound, or genuinely funny in this exact format:

"Quote" - Author Name
Brief 1-2 sentence biography of the author.
MEANING: Explain what this quote means in 2-3 sentences.
APPLICATION: Give a practical example of how someone could apply this quote in their daily life (2-3 sentences).
AUTHOR SUMMARY: Provide a concise summary including their birth/death years, country of origin, and key contributions (2-3 sentences). Format: "Name (YYYY-YYYY) was a [nationality] [profession] who [key contributions]."

If no author is known, just return the quote without attribution but still include the meaning and application sections. Always provide a different quote than any previously shown.

Give me a quote that is inspiring, profound, or funny.`

// maxAvoidQuotes caps the do-not-repeat list included in the prompt
const maxAvoidQuotes = 50

// chatCompleter is the slice of the OpenAI client the generator needs
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// QuoteGenerator produces new quotes through the completion API
type QuoteGenerator struct {
	client chatCompleter
	model  string
}

// NewQuoteGenerator creates a generator backed by the OpenAI API
func NewQuoteGenerator(apiKey, model string) (*QuoteGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	return &QuoteGenerator{
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

// NewQuoteGeneratorWithClient creates a generator over an existing
// completion client
func NewQuoteGeneratorWithClient(client chatCompleter, model string) *QuoteGenerator {
	return &QuoteGenerator{client: client, model: model}
}

// Generate requests one quote, instructing the model to avoid the given
// previously stored quotes, and parses the completion. Upstream errors
// and empty completions are hard failures; nothing is retried.
func (g *QuoteGenerator) Generate(ctx context.Context, avoid []models.Quote) (*ParsedQuote, error) {
	prompt := BuildQuotePrompt(avoid)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   800,
		Temperature: 0.8,
	})
	if err != nil {
		return nil, fmt.Errorf("completion request failed: %w", err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return nil, fmt.Errorf("no content received from completion API")
	}

	content := resp.Choices[0].Message.Content
	parsed := ParseQuoteText(content)
	log.Printf("✅ Generated quote: %s", truncate(parsed.Text, 50))
	return parsed, nil
}

// BuildQuotePrompt appends the do-not-repeat list to the base prompt
func BuildQuotePrompt(avoid []models.Quote) string {
	if len(avoid) == 0 {
		return quotePrompt
	}
	if len(avoid) > maxAvoidQuotes {
		avoid = avoid[:maxAvoidQuotes]
	}

	var lines []string
	for _, quote := range avoid {
		if quote.Author != nil && *quote.Author != "" {
			lines = append(lines, fmt.Sprintf("%q - %s", quote.Text, *quote.Author))
		} else {
			lines = append(lines, fmt.Sprintf("%q", quote.Text))
		}
	}

	return quotePrompt + "\n\nPlease avoid these quotes that have already been used:\n• " + strings.Join(lines, "\n• ")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
