package services

import (
	"errors"
	"testing"

	"github.com/appleboy/go-fcm"
)

// fakeSender scripts one outcome per token
type fakeSender struct {
	sent     []*fcm.Message
	outcomes map[string]fakeOutcome
}

type fakeOutcome struct {
	err       error
	resultErr error
}

func (f *fakeSender) Send(msg *fcm.Message) (*fcm.Response, error) {
	f.sent = append(f.sent, msg)

	outcome := f.outcomes[msg.To]
	if outcome.err != nil {
		return nil, outcome.err
	}
	return &fcm.Response{
		Results: []fcm.Result{{Error: outcome.resultErr}},
	}, nil
}

func TestSendToTokensCountsIndependently(t *testing.T) {
	fake := &fakeSender{outcomes: map[string]fakeOutcome{
		"t2": {err: errors.New("connection reset")},
	}}
	push := NewPushServiceWithClient(fake)

	result := push.SendToTokens([]string{"t1", "t2", "t3"}, "Title", "Body", nil)

	if result.SuccessCount != 2 {
		t.Errorf("success count = %d, want 2", result.SuccessCount)
	}
	if result.FailureCount != 1 {
		t.Errorf("failure count = %d, want 1", result.FailureCount)
	}
	if len(fake.sent) != 3 {
		t.Errorf("sent %d messages, want 3: a failing token must not abort the batch", len(fake.sent))
	}
}

func TestSendToTokensCollectsUnregistered(t *testing.T) {
	fake := &fakeSender{outcomes: map[string]fakeOutcome{
		"gone": {resultErr: fcm.ErrNotRegistered},
	}}
	push := NewPushServiceWithClient(fake)

	result := push.SendToTokens([]string{"live", "gone"}, "Title", "Body", nil)

	if result.SuccessCount != 1 || result.FailureCount != 1 {
		t.Errorf("counts = %d/%d, want 1/1", result.SuccessCount, result.FailureCount)
	}
	if len(result.UnregisteredTokens) != 1 || result.UnregisteredTokens[0] != "gone" {
		t.Errorf("unregistered tokens = %v, want [gone]", result.UnregisteredTokens)
	}
}

func TestSendToTokensMessageShape(t *testing.T) {
	fake := &fakeSender{}
	push := NewPushServiceWithClient(fake)

	push.SendToTokens([]string{"t1"}, "Marcus Aurelius", "You have power over your mind.", map[string]string{
		"type":    "daily_quote",
		"quoteId": "7",
	})

	if len(fake.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(fake.sent))
	}

	msg := fake.sent[0]
	if msg.To != "t1" {
		t.Errorf("to = %q, want t1", msg.To)
	}
	if msg.Priority != "high" {
		t.Errorf("priority = %q, want high", msg.Priority)
	}
	if msg.Notification == nil || msg.Notification.Title != "Marcus Aurelius" {
		t.Fatalf("unexpected notification: %+v", msg.Notification)
	}
	if msg.Notification.Sound != "default" {
		t.Errorf("sound = %q, want default", msg.Notification.Sound)
	}
	if msg.Data["quoteId"] != "7" {
		t.Errorf("data quoteId = %v, want 7", msg.Data["quoteId"])
	}
}

func TestSendToTokensEmpty(t *testing.T) {
	fake := &fakeSender{}
	push := NewPushServiceWithClient(fake)

	result := push.SendToTokens(nil, "Title", "Body", nil)
	if result.SuccessCount != 0 || result.FailureCount != 0 {
		t.Errorf("counts = %d/%d, want 0/0", result.SuccessCount, result.FailureCount)
	}
	if len(fake.sent) != 0 {
		t.Errorf("sent %d messages, want 0", len(fake.sent))
	}
}

func TestNewPushServiceRequiresKey(t *testing.T) {
	if _, err := NewPushService(""); err == nil {
		t.Error("expected an error for a missing server key")
	}
}
