package jobs

import (
	"log"
	"time"

	"gorm.io/gorm"

	"daily-quote-server/database"
	"daily-quote-server/services"
)

// NotificationJob dispatches the daily quote to users as their
// preferred local time comes up, checking once per minute
type NotificationJob struct {
	push     *services.PushService
	stopChan chan bool
}

// NewNotificationJob creates a new notification job
func NewNotificationJob(push *services.PushService) *NotificationJob {
	return &NotificationJob{
		push:     push,
		stopChan: make(chan bool),
	}
}

// Start begins the notification job
func (j *NotificationJob) Start() {
	go j.run()
	log.Println("🚀 Notification job started")
}

// Stop stops the notification job
func (j *NotificationJob) Stop() {
	j.stopChan <- true
	log.Println("🛑 Notification job stopped")
}

func (j *NotificationJob) run() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.dispatchDue()
		case <-j.stopChan:
			return
		}
	}
}

// dispatchDue sends today's quote to users whose preferred time matches
// the current minute in their own timezone
func (j *NotificationJob) dispatchDue() {
	users, err := database.GetUsersDueAt(time.Now())
	if err != nil {
		log.Printf("❌ Error loading due users: %v", err)
		return
	}
	if len(users) == 0 {
		return
	}

	quote, err := database.GetTodayQuote()
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			log.Printf("⚠️ %d users due but no quote assigned for today", len(users))
			return
		}
		log.Printf("❌ Error reading today's quote: %v", err)
		return
	}

	services.DispatchQuoteToUsers(j.push, quote, users)
}
