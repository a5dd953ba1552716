package jobs

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"daily-quote-server/database"
	"daily-quote-server/models"
	"daily-quote-server/services"
)

// quoteGenerator is the slice of the generator the job needs
type quoteGenerator interface {
	Generate(ctx context.Context, avoid []models.Quote) (*services.ParsedQuote, error)
}

// DailyQuoteJob makes sure each day gets a quote assigned even if the
// external scheduler never fires
type DailyQuoteJob struct {
	generator quoteGenerator
	stopChan  chan bool
}

// NewDailyQuoteJob creates a new daily quote job
func NewDailyQuoteJob(generator quoteGenerator) *DailyQuoteJob {
	return &DailyQuoteJob{
		generator: generator,
		stopChan:  make(chan bool),
	}
}

// Start begins the daily quote job
func (j *DailyQuoteJob) Start() {
	go j.run()
	log.Println("🚀 Daily quote job started")
}

// Stop stops the daily quote job
func (j *DailyQuoteJob) Stop() {
	j.stopChan <- true
	log.Println("🛑 Daily quote job stopped")
}

func (j *DailyQuoteJob) run() {
	// Catch up immediately on startup, then re-check hourly
	j.ensureTodayQuote()

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.ensureTodayQuote()
		case <-j.stopChan:
			return
		}
	}
}

// ensureTodayQuote assigns a quote to today if none is assigned yet
func (j *DailyQuoteJob) ensureTodayQuote() {
	_, err := database.GetTodayQuote()
	if err == nil {
		return
	}
	if err != gorm.ErrRecordNotFound {
		log.Printf("❌ Error checking today's quote: %v", err)
		return
	}

	if j.generator == nil {
		log.Println("⚠️ No quote assigned for today and generation is not configured")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	quote, err := j.generateQuote(ctx)
	if err != nil {
		log.Printf("❌ Daily quote generation failed: %v", err)
		return
	}

	if err := database.SetTodayQuote(quote.ID); err != nil {
		log.Printf("❌ Error assigning today's quote: %v", err)
		return
	}

	log.Printf("✅ Daily quote job assigned quote %d for today", quote.ID)
}

// generateQuote produces and stores one new quote, reusing the stored
// copy when the model repeats itself
func (j *DailyQuoteJob) generateQuote(ctx context.Context) (*models.Quote, error) {
	avoid, err := database.GetQuotes(100)
	if err != nil {
		return nil, err
	}

	parsed, err := j.generator.Generate(ctx, avoid)
	if err != nil {
		return nil, err
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
		if err == database.ErrDuplicateQuote {
			return database.FindQuoteNormalized(parsed.Text, parsed.Author)
		}
		return nil, err
	}
	return quote, nil
}
