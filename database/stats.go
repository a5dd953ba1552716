package database

import (
	"daily-quote-server/models"
)

// Stats aggregates the dashboard counters
type Stats struct {
	Quotes struct {
		Total int64 `json:"total"`
		Sent  int64 `json:"sent"`
	} `json:"quotes"`
	Devices struct {
		Total  int64 `json:"total"`
		Active int64 `json:"active"`
	} `json:"devices"`
	Notifications struct {
		Total           int64 `json:"total"`
		TotalRecipients int64 `json:"totalRecipients"`
		TotalSuccess    int64 `json:"totalSuccess"`
	} `json:"notifications"`
	Users struct {
		Total   int64 `json:"total"`
		Enabled int64 `json:"enabled"`
	} `json:"users"`
}

// GetStats collects aggregate counts for the admin dashboard
func GetStats() (*Stats, error) {
	var stats Stats

	if err := DB.Model(&models.Quote{}).Count(&stats.Quotes.Total).Error; err != nil {
		return nil, err
	}
	if err := DB.Model(&models.Quote{}).Where("sent_at IS NOT NULL").Count(&stats.Quotes.Sent).Error; err != nil {
		return nil, err
	}

	var err error
	stats.Devices.Total, stats.Devices.Active, err = CountDeviceTokens()
	if err != nil {
		return nil, err
	}

	if err := DB.Model(&models.Notification{}).Count(&stats.Notifications.Total).Error; err != nil {
		return nil, err
	}
	row := DB.Model(&models.Notification{}).
		Select("COALESCE(SUM(recipient_count), 0), COALESCE(SUM(success_count), 0)").
		Row()
	if err := row.Scan(&stats.Notifications.TotalRecipients, &stats.Notifications.TotalSuccess); err != nil {
		return nil, err
	}

	stats.Users.Total, stats.Users.Enabled, err = CountUsers()
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

// GetNotificationLog returns recent dispatch audit rows, newest first
func GetNotificationLog(limit int) ([]models.Notification, error) {
	var records []models.Notification
	err := DB.Order("sent_at DESC").Limit(limit).Find(&records).Error
	return records, err
}

// SaveNotificationRecord writes one audit row per dispatch batch
func SaveNotificationRecord(quoteID uint, recipientCount, successCount int) error {
	record := models.Notification{
		QuoteID:        quoteID,
		RecipientCount: recipientCount,
		SuccessCount:   successCount,
	}
	return DB.Create(&record).Error
}
