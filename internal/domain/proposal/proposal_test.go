package proposal

import (
	"strings"
	"testing"
	"time"

	"catering_quotes/internal/domain/entities"
)

func TestBuildEmail(t *testing.T) {
	q := entities.Quote{
		QuoteNumber: "Q-250615-4242",
		Customer:    entities.Customer{Name: "Ada"},
		Event:       entities.EventDetails{Date: "2025-07-04", Venue: "Barn at Westside"},
		Payment:     entities.PaymentInfo{DepositLink: "https://pay.example/abc"},
		Totals:      entities.Totals{Total: 2500, Deposit: 1250},
		ExpiresAt:   time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
	}

	email := BuildEmail(q)

	if email.Subject != "Catering Quote Q-250615-4242 - 2025-07-04" {
		t.Fatalf("unexpected subject %q", email.Subject)
	}
	for _, want := range []string{
		"Hi Ada,",
		"your event on 2025-07-04 at Barn at Westside",
		"Your quote (Q-250615-4242) total is $2500.00.",
		"the deposit due is $1250.00.",
		"Deposit payment link: https://pay.example/abc",
		"valid through July 15, 2025.",
		"Tony Catering",
	} {
		if !strings.Contains(email.Body, want) {
			t.Fatalf("expected body to contain %q\nbody:\n%s", want, email.Body)
		}
	}
}

func TestBuildEmail_Placeholders(t *testing.T) {
	email := BuildEmail(entities.Quote{})

	if email.Subject != "Catering Quote your quote - your event date" {
		t.Fatalf("unexpected subject %q", email.Subject)
	}
	for _, want := range []string{
		"Hi there,",
		"your event on your event date at your venue",
		"Reply to this email if you need a payment link.",
	} {
		if !strings.Contains(email.Body, want) {
			t.Fatalf("expected body to contain %q\nbody:\n%s", want, email.Body)
		}
	}
	if strings.Contains(email.Body, "valid through") {
		t.Fatal("expected no validity line without an expiry date")
	}
}
