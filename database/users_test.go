package database

import (
	"testing"
	"time"
)

func TestRegisterUserDefaults(t *testing.T) {
	setupTestDB(t)

	user := mustRegisterUser(t, "device-1", nil)

	if user.NotificationTime != "09:00" {
		t.Errorf("notification time = %q, want 09:00", user.NotificationTime)
	}
	if user.Timezone != "America/Chicago" {
		t.Errorf("timezone = %q, want America/Chicago", user.Timezone)
	}
	if !user.NotificationsEnabled {
		t.Error("notifications should default to enabled")
	}
}

func TestRegisterUserUpsertsByDeviceID(t *testing.T) {
	setupTestDB(t)

	first := mustRegisterUser(t, "device-1", strPtr("token-a"))

	timeValue := "21:30"
	second, err := RegisterUser("device-1", strPtr("token-b"), &timeValue, nil)
	if err != nil {
		t.Fatalf("re-register: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("re-registration created a new row: %d != %d", second.ID, first.ID)
	}
	if second.DeviceToken == nil || *second.DeviceToken != "token-b" {
		t.Errorf("device token = %v, want token-b", second.DeviceToken)
	}
	if second.NotificationTime != "21:30" {
		t.Errorf("notification time = %q, want 21:30", second.NotificationTime)
	}
	// Unspecified fields keep their stored values
	if second.Timezone != "America/Chicago" {
		t.Errorf("timezone = %q, want America/Chicago", second.Timezone)
	}
}

func TestUpdateUserPreferencesPartial(t *testing.T) {
	setupTestDB(t)

	mustRegisterUser(t, "device-1", strPtr("token-a"))

	disabled := false
	user, err := UpdateUserPreferences("device-1", UserPreferences{
		NotificationsEnabled: &disabled,
	})
	if err != nil {
		t.Fatalf("UpdateUserPreferences: %v", err)
	}

	reloaded, err := GetUserByDeviceID("device-1")
	if err != nil {
		t.Fatalf("GetUserByDeviceID: %v", err)
	}
	if reloaded.NotificationsEnabled {
		t.Error("notifications should be disabled")
	}
	if reloaded.DeviceToken == nil || *reloaded.DeviceToken != "token-a" {
		t.Errorf("device token = %v, want token-a untouched", reloaded.DeviceToken)
	}
	if user.ID != reloaded.ID {
		t.Errorf("returned user id %d, want %d", user.ID, reloaded.ID)
	}
}

func TestUpdateUserPreferencesUnknownDevice(t *testing.T) {
	setupTestDB(t)

	timeValue := "10:00"
	if _, err := UpdateUserPreferences("no-such-device", UserPreferences{NotificationTime: &timeValue}); err == nil {
		t.Error("expected an error for an unknown device")
	}
}

func TestGetUsersForNotificationTime(t *testing.T) {
	setupTestDB(t)

	timeValue := "08:15"
	otherTime := "08:16"

	matching, err := RegisterUser("device-match", strPtr("token-1"), &timeValue, nil)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := RegisterUser("device-other-time", strPtr("token-2"), &otherTime, nil); err != nil {
		t.Fatalf("register: %v", err)
	}
	// Right time but no token
	if _, err := RegisterUser("device-no-token", nil, &timeValue, nil); err != nil {
		t.Fatalf("register: %v", err)
	}
	// Right time but disabled
	if _, err := RegisterUser("device-disabled", strPtr("token-3"), &timeValue, nil); err != nil {
		t.Fatalf("register: %v", err)
	}
	disabled := false
	if _, err := UpdateUserPreferences("device-disabled", UserPreferences{NotificationsEnabled: &disabled}); err != nil {
		t.Fatalf("disable: %v", err)
	}

	users, err := GetUsersForNotificationTime(8, 15)
	if err != nil {
		t.Fatalf("GetUsersForNotificationTime: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("matched %d users, want 1", len(users))
	}
	if users[0].ID != matching.ID {
		t.Errorf("matched user %d, want %d", users[0].ID, matching.ID)
	}
}

func TestGetUsersDueAtRespectsTimezones(t *testing.T) {
	setupTestDB(t)

	// 14:30 UTC is 09:30 in New York (EST, UTC-5) and 15:30 in Berlin (CET)
	now := time.Date(2026, time.January, 15, 14, 30, 0, 0, time.UTC)

	nyTime := "09:30"
	berlinWrong := "09:30"
	nyZone := "America/New_York"
	berlinZone := "Europe/Berlin"

	dueUser, err := RegisterUser("device-ny", strPtr("token-ny"), &nyTime, &nyZone)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := RegisterUser("device-berlin", strPtr("token-berlin"), &berlinWrong, &berlinZone); err != nil {
		t.Fatalf("register: %v", err)
	}

	// Matching wall clock in a zone the resolver cannot load is skipped
	badZone := "Not/AZone"
	utcLike := "14:30"
	if _, err := RegisterUser("device-bad-zone", strPtr("token-bad"), &utcLike, &badZone); err != nil {
		t.Fatalf("register: %v", err)
	}

	due, err := GetUsersDueAt(now)
	if err != nil {
		t.Fatalf("GetUsersDueAt: %v", err)
	}
	if len(due) != 1 {
		t.Fatalf("due %d users, want 1", len(due))
	}
	if due[0].ID != dueUser.ID {
		t.Errorf("due user %d, want %d", due[0].ID, dueUser.ID)
	}
}

func TestCountUsers(t *testing.T) {
	setupTestDB(t)

	mustRegisterUser(t, "device-1", nil)
	mustRegisterUser(t, "device-2", nil)
	disabled := false
	if _, err := UpdateUserPreferences("device-2", UserPreferences{NotificationsEnabled: &disabled}); err != nil {
		t.Fatalf("disable: %v", err)
	}

	total, enabled, err := CountUsers()
	if err != nil {
		t.Fatalf("CountUsers: %v", err)
	}
	if total != 2 || enabled != 1 {
		t.Errorf("counts = %d/%d, want 2/1", total, enabled)
	}
}
