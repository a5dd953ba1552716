package database

import (
	"testing"

	"daily-quote-server/models"
)

func TestSaveQuoteRejectsNormalizedDuplicate(t *testing.T) {
	setupTestDB(t)

	author := strPtr("Mark Twain")
	mustSaveQuote(t, "The secret of getting ahead is getting started.", author)

	tests := []struct {
		name   string
		text   string
		author *string
	}{
		{"exact copy", "The secret of getting ahead is getting started.", strPtr("Mark Twain")},
		{"surrounding whitespace", "  The secret of getting ahead is getting started.  ", strPtr("Mark Twain")},
		{"different case", "THE SECRET OF GETTING AHEAD IS GETTING STARTED.", strPtr("Mark Twain")},
		{"author whitespace", "The secret of getting ahead is getting started.", strPtr("  Mark Twain  ")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SaveQuote(&models.Quote{Text: tt.text, Author: tt.author})
			if err != ErrDuplicateQuote {
				t.Errorf("SaveQuote = %v, want ErrDuplicateQuote", err)
			}
		})
	}
}

func TestSaveQuoteDistinguishesAuthors(t *testing.T) {
	setupTestDB(t)

	mustSaveQuote(t, "Know thyself.", strPtr("Socrates"))
	mustSaveQuote(t, "Know thyself.", strPtr("Plato"))
	mustSaveQuote(t, "Know thyself.", nil)

	quotes, err := GetQuotes(10)
	if err != nil {
		t.Fatalf("GetQuotes: %v", err)
	}
	if len(quotes) != 3 {
		t.Errorf("stored %d quotes, want 3", len(quotes))
	}
}

func TestCheckDuplicateQuoteAuthorEquivalence(t *testing.T) {
	setupTestDB(t)

	mustSaveQuote(t, "Anonymous wisdom.", nil)

	tests := []struct {
		name   string
		author *string
		want   bool
	}{
		{"nil author", nil, true},
		{"empty author", strPtr(""), true},
		{"whitespace author", strPtr("   "), true},
		{"named author", strPtr("Someone"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			duplicate, err := CheckDuplicateQuote("Anonymous wisdom.", tt.author)
			if err != nil {
				t.Fatalf("CheckDuplicateQuote: %v", err)
			}
			if duplicate != tt.want {
				t.Errorf("duplicate = %v, want %v", duplicate, tt.want)
			}
		})
	}
}

func TestFindQuote(t *testing.T) {
	setupTestDB(t)

	saved := mustSaveQuote(t, "What we think, we become.", strPtr("Buddha"))

	found, err := FindQuote("What we think, we become.", strPtr("Buddha"))
	if err != nil {
		t.Fatalf("FindQuote: %v", err)
	}
	if found.ID != saved.ID {
		t.Errorf("found id %d, want %d", found.ID, saved.ID)
	}

	if _, err := FindQuote("Not stored.", nil); err == nil {
		t.Error("expected an error for a missing quote")
	}
}

func TestMarkQuoteAsSent(t *testing.T) {
	setupTestDB(t)

	quote := mustSaveQuote(t, "Sent quote.", nil)
	if err := MarkQuoteAsSent(quote.ID, "admin@example.com"); err != nil {
		t.Fatalf("MarkQuoteAsSent: %v", err)
	}

	reloaded, err := GetQuoteByID(quote.ID)
	if err != nil {
		t.Fatalf("GetQuoteByID: %v", err)
	}
	if reloaded.SentAt == nil {
		t.Error("sent_at was not stamped")
	}
	if reloaded.SentBy == nil || *reloaded.SentBy != "admin@example.com" {
		t.Errorf("sent_by = %v, want admin@example.com", reloaded.SentBy)
	}
}

func TestGetLatestDeliveredQuote(t *testing.T) {
	setupTestDB(t)

	first := mustSaveQuote(t, "First quote.", nil)
	mustSaveQuote(t, "Second quote, never dispatched.", nil)

	if _, err := GetLatestDeliveredQuote(); err == nil {
		t.Fatal("expected an error before any dispatch")
	}

	if err := SaveNotificationRecord(first.ID, 5, 4); err != nil {
		t.Fatalf("SaveNotificationRecord: %v", err)
	}

	latest, err := GetLatestDeliveredQuote()
	if err != nil {
		t.Fatalf("GetLatestDeliveredQuote: %v", err)
	}
	if latest.ID != first.ID {
		t.Errorf("latest id %d, want %d", latest.ID, first.ID)
	}
}

func TestGetQuotesSortedByFavorites(t *testing.T) {
	setupTestDB(t)

	plain := mustSaveQuote(t, "Unloved quote.", nil)
	popular := mustSaveQuote(t, "Popular quote.", nil)

	alice := mustRegisterUser(t, "device-alice", nil)
	bob := mustRegisterUser(t, "device-bob", nil)
	for _, userID := range []uint{alice.ID, bob.ID} {
		if _, err := ToggleFavorite(userID, popular.ID); err != nil {
			t.Fatalf("ToggleFavorite: %v", err)
		}
	}

	quotes, err := GetQuotesSorted(10, "favorites")
	if err != nil {
		t.Fatalf("GetQuotesSorted: %v", err)
	}
	if len(quotes) != 2 {
		t.Fatalf("got %d quotes, want 2", len(quotes))
	}
	if quotes[0].ID != popular.ID {
		t.Errorf("first quote id %d, want the favorited quote %d", quotes[0].ID, popular.ID)
	}
	if quotes[1].ID != plain.ID {
		t.Errorf("second quote id %d, want %d", quotes[1].ID, plain.ID)
	}
}
