package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"daily-quote-server/models"
)

type fakeCompleter struct {
	lastRequest openai.ChatCompletionRequest
	response    openai.ChatCompletionResponse
	err         error
}

func (f *fakeCompleter) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.lastRequest = request
	return f.response, f.err
}

func completionWith(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}
}

func TestGenerateParsesCompletion(t *testing.T) {
	fake := &fakeCompleter{
		response: completionWith(`"Well begun is half done." - Aristotle
Aristotle was a Greek philosopher.
MEANING: Starting properly carries most of the work.
APPLICATION: Spend five minutes planning before you begin.
AUTHOR SUMMARY: Aristotle (384-322 BC) was a Greek philosopher.`),
	}

	generator := NewQuoteGeneratorWithClient(fake, "gpt-4o-mini")
	parsed, err := generator.Generate(context.Background(), nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if parsed.Text != "Well begun is half done." {
		t.Errorf("unexpected text: %q", parsed.Text)
	}
	if strValue(parsed.Author) != "Aristotle" {
		t.Errorf("unexpected author: %q", strValue(parsed.Author))
	}

	if fake.lastRequest.Model != "gpt-4o-mini" {
		t.Errorf("unexpected model: %q", fake.lastRequest.Model)
	}
	if fake.lastRequest.MaxTokens != 800 {
		t.Errorf("unexpected max tokens: %d", fake.lastRequest.MaxTokens)
	}
}

func TestGenerateIncludesAvoidList(t *testing.T) {
	author := "Seneca"
	avoid := []models.Quote{
		{Text: "Luck is what happens when preparation meets opportunity.", Author: &author},
		{Text: "An unattributed proverb."},
	}

	fake := &fakeCompleter{response: completionWith(`"Fresh quote." - Nobody`)}
	generator := NewQuoteGeneratorWithClient(fake, "gpt-4o-mini")

	if _, err := generator.Generate(context.Background(), avoid); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	prompt := fake.lastRequest.Messages[0].Content
	if !strings.Contains(prompt, "Please avoid these quotes that have already been used:") {
		t.Error("prompt is missing the avoid-list preamble")
	}
	if !strings.Contains(prompt, `"Luck is what happens when preparation meets opportunity." - Seneca`) {
		t.Error("prompt is missing the attributed avoid entry")
	}
	if !strings.Contains(prompt, `"An unattributed proverb."`) {
		t.Error("prompt is missing the unattributed avoid entry")
	}
}

func TestBuildQuotePromptCapsAvoidList(t *testing.T) {
	avoid := make([]models.Quote, maxAvoidQuotes+25)
	for i := range avoid {
		avoid[i] = models.Quote{Text: "quote"}
	}

	prompt := BuildQuotePrompt(avoid)
	count := strings.Count(prompt, "• ")
	if count != maxAvoidQuotes {
		t.Errorf("avoid list has %d entries, want %d", count, maxAvoidQuotes)
	}
}

func TestBuildQuotePromptEmptyAvoidList(t *testing.T) {
	prompt := BuildQuotePrompt(nil)
	if strings.Contains(prompt, "Please avoid") {
		t.Error("empty avoid list should not add the avoid preamble")
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name     string
		response openai.ChatCompletionResponse
		err      error
	}{
		{name: "upstream error", err: errors.New("rate limited")},
		{name: "no choices", response: openai.ChatCompletionResponse{}},
		{name: "empty content", response: completionWith("   ")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeCompleter{response: tt.response, err: tt.err}
			generator := NewQuoteGeneratorWithClient(fake, "gpt-4o-mini")

			if _, err := generator.Generate(context.Background(), nil); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestNewQuoteGeneratorRequiresKey(t *testing.T) {
	if _, err := NewQuoteGenerator("", "gpt-4o-mini"); err == nil {
		t.Error("expected an error for a missing API key")
	}
}
