package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"daily-quote-server/models"
)

// UserPreferences carries the optional fields of a preference update.
// Nil pointers leave the stored value untouched.
type UserPreferences struct {
	NotificationTime     *string
	Timezone             *string
	DeviceToken          *string
	NotificationsEnabled *bool
}

// RegisterUser upserts a user by device id. Existing rows are updated
// with whichever optional fields the client supplied.
func RegisterUser(deviceID string, deviceToken, notificationTime, timezone *string) (*models.User, error) {
	var user models.User
	err := DB.Where("device_id = ?", deviceID).First(&user).Error

	if err == gorm.ErrRecordNotFound {
		user = models.User{
			DeviceID:             deviceID,
			DeviceToken:          deviceToken,
			NotificationTime:     "09:00",
			Timezone:             "America/Chicago",
			NotificationsEnabled: true,
		}
		if notificationTime != nil {
			user.NotificationTime = *notificationTime
		}
		if timezone != nil {
			user.Timezone = *timezone
		}
		if err := DB.Create(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	} else if err != nil {
		return nil, err
	}

	if deviceToken != nil {
		user.DeviceToken = deviceToken
	}
	if notificationTime != nil {
		user.NotificationTime = *notificationTime
	}
	if timezone != nil {
		user.Timezone = *timezone
	}
	if err := DB.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByDeviceID returns the user registered under a device id
func GetUserByDeviceID(deviceID string) (*models.User, error) {
	var user models.User
	if err := DB.Where("device_id = ?", deviceID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserPreferences applies a partial preference update to an
// existing user
func UpdateUserPreferences(deviceID string, prefs UserPreferences) (*models.User, error) {
	user, err := GetUserByDeviceID(deviceID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if prefs.NotificationTime != nil {
		updates["notification_time"] = *prefs.NotificationTime
	}
	if prefs.Timezone != nil {
		updates["timezone"] = *prefs.Timezone
	}
	if prefs.DeviceToken != nil {
		updates["device_token"] = *prefs.DeviceToken
	}
	if prefs.NotificationsEnabled != nil {
		updates["notifications_enabled"] = *prefs.NotificationsEnabled
	}

	if len(updates) > 0 {
		if err := DB.Model(user).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return user, nil
}

// GetUsersForNotificationTime returns enabled users with a device token
// whose stored preference equals the exact HH:MM value
func GetUsersForNotificationTime(hour, minute int) ([]models.User, error) {
	timeValue := fmt.Sprintf("%02d:%02d", hour, minute)

	var users []models.User
	err := DB.Where(
		"notification_time = ? AND notifications_enabled = ? AND device_token IS NOT NULL AND device_token <> ''",
		timeValue, true).
		Find(&users).Error
	return users, err
}

// GetUsersDueAt returns enabled users whose preferred notification time
// matches the current wall clock in their own timezone. Users with an
// unloadable timezone are skipped rather than failing the batch.
func GetUsersDueAt(now time.Time) ([]models.User, error) {
	var candidates []models.User
	err := DB.Where(
		"notifications_enabled = ? AND device_token IS NOT NULL AND device_token <> ''", true).
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	var due []models.User
	for _, user := range candidates {
		loc, err := time.LoadLocation(user.Timezone)
		if err != nil {
			log.Printf("⚠️ Skipping user %d: unknown timezone %q", user.ID, user.Timezone)
			continue
		}
		local := now.In(loc)
		if fmt.Sprintf("%02d:%02d", local.Hour(), local.Minute()) == user.NotificationTime {
			due = append(due, user)
		}
	}
	return due, nil
}

// CountUsers returns total and notifications-enabled user counts
func CountUsers() (total, enabled int64, err error) {
	if err = DB.Model(&models.User{}).Count(&total).Error; err != nil {
		return
	}
	err = DB.Model(&models.User{}).Where("notifications_enabled = ?", true).Count(&enabled).Error
	return
}
