// Package proposal builds customer-facing text from a quote snapshot. Pure
// string formatting; sending the email is someone else's job.
package proposal

import (
	"fmt"
	"strings"

	"catering_quotes/internal/domain/entities"
	"catering_quotes/internal/domain/pricing"
)

type Email struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// BuildEmail fills the quote email template from a quote snapshot. Missing
// fields get neutral placeholders so the template never renders half-empty.
func BuildEmail(q entities.Quote) Email {
	customerName := q.Customer.Name
	if customerName == "" {
		customerName = "there"
	}
	eventDate := q.Event.Date
	if eventDate == "" {
		eventDate = "your event date"
	}
	venue := q.Event.Venue
	if venue == "" {
		venue = "your venue"
	}
	quoteNumber := q.QuoteNumber
	if quoteNumber == "" {
		quoteNumber = "your quote"
	}

	lines := []string{
		fmt.Sprintf("Hi %s,", customerName),
		"",
		fmt.Sprintf("Thank you for considering us for your event on %s at %s.", eventDate, venue),
		fmt.Sprintf("Your quote (%s) total is %s.", quoteNumber, pricing.Currency(q.Totals.Total)),
		fmt.Sprintf("To reserve your date, the deposit due is %s.", pricing.Currency(q.Totals.Deposit)),
	}
	if link := q.Payment.DepositLink; link != "" {
		lines = append(lines, fmt.Sprintf("Deposit payment link: %s", link))
	} else {
		lines = append(lines, "Reply to this email if you need a payment link.")
	}
	if !q.ExpiresAt.IsZero() {
		lines = append(lines, fmt.Sprintf("This quote is valid through %s.", q.ExpiresAt.Format("January 2, 2006")))
	}
	lines = append(lines,
		"",
		"Please reply with any questions or requested adjustments.",
		"",
		"Tony Catering",
	)

	return Email{
		Subject: fmt.Sprintf("Catering Quote %s - %s", quoteNumber, eventDate),
		Body:    strings.Join(lines, "\n"),
	}
}
