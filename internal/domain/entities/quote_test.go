package entities

import (
	"testing"
	"time"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from QuoteStatus
		to   QuoteStatus
		want bool
	}{
		{QuoteStatusDraft, QuoteStatusSent, true},
		{QuoteStatusDraft, QuoteStatusDeclined, true},
		{QuoteStatusDraft, QuoteStatusExpired, true},
		{QuoteStatusDraft, QuoteStatusViewed, false},
		{QuoteStatusDraft, QuoteStatusAccepted, false},
		{QuoteStatusSent, QuoteStatusViewed, true},
		{QuoteStatusSent, QuoteStatusAccepted, true},
		{QuoteStatusSent, QuoteStatusDraft, false},
		{QuoteStatusViewed, QuoteStatusAccepted, true},
		{QuoteStatusViewed, QuoteStatusDeclined, true},
		{QuoteStatusViewed, QuoteStatusSent, false},
		{QuoteStatusAccepted, QuoteStatusDeclined, false},
		{QuoteStatusAccepted, QuoteStatusDraft, false},
		{QuoteStatusDeclined, QuoteStatusAccepted, false},
		{QuoteStatusExpired, QuoteStatusDraft, true},
		{QuoteStatusExpired, QuoteStatusSent, true},
		{QuoteStatusExpired, QuoteStatusAccepted, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Fatalf("%s -> %s: expected %v, got %v", tt.from, tt.to, tt.want, got)
		}
	}
}

func TestCanTransition_SelfIsAlwaysLegal(t *testing.T) {
	for _, s := range QuoteStatuses() {
		if !CanTransition(s, s) {
			t.Fatalf("expected %s -> %s to be legal", s, s)
		}
	}
}

func TestNormalizeStatus(t *testing.T) {
	for _, s := range QuoteStatuses() {
		if got := NormalizeStatus(string(s)); got != s {
			t.Fatalf("expected %s preserved, got %s", s, got)
		}
	}
	if got := NormalizeStatus("bogus"); got != QuoteStatusDraft {
		t.Fatalf("expected unknown status to normalize to draft, got %s", got)
	}
	if got := NormalizeStatus(""); got != QuoteStatusDraft {
		t.Fatalf("expected empty status to normalize to draft, got %s", got)
	}
}

func TestAllowedTransitions_ReturnsACopy(t *testing.T) {
	first := AllowedTransitions(QuoteStatusDraft)
	first[0] = QuoteStatusAccepted
	second := AllowedTransitions(QuoteStatusDraft)
	if second[0] == QuoteStatusAccepted {
		t.Fatal("expected callers to get an independent slice")
	}
}

func TestExpirable(t *testing.T) {
	expirable := map[QuoteStatus]bool{
		QuoteStatusDraft:    true,
		QuoteStatusSent:     true,
		QuoteStatusViewed:   true,
		QuoteStatusAccepted: false,
		QuoteStatusDeclined: false,
		QuoteStatusExpired:  false,
	}
	for s, want := range expirable {
		if got := Expirable(s); got != want {
			t.Fatalf("Expirable(%s): expected %v, got %v", s, want, got)
		}
	}
}

func TestQuote_ExpiryDue(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		quote Quote
		want  bool
	}{
		{"sent and past validity", Quote{Status: QuoteStatusSent, ExpiresAt: now.Add(-time.Hour)}, true},
		{"sent and still valid", Quote{Status: QuoteStatusSent, ExpiresAt: now.Add(time.Hour)}, false},
		{"sent expiring exactly now", Quote{Status: QuoteStatusSent, ExpiresAt: now}, false},
		{"accepted never expires", Quote{Status: QuoteStatusAccepted, ExpiresAt: now.Add(-time.Hour)}, false},
		{"already expired stays put", Quote{Status: QuoteStatusExpired, ExpiresAt: now.Add(-time.Hour)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.quote.ExpiryDue(now); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestEventForm_ClampedGuests(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-5, 0},
		{0, 0},
		{120, 120},
		{MaxGuests, MaxGuests},
		{MaxGuests + 1, MaxGuests},
	}
	for _, tt := range tests {
		if got := (EventForm{Guests: tt.in}).ClampedGuests(); got != tt.want {
			t.Fatalf("ClampedGuests(%d): expected %d, got %d", tt.in, tt.want, got)
		}
	}
}
