package entities

import "time"

// QuoteStatus represents the sales lifecycle of a quote.
//
// Domain notes:
//   - accepted and declined are terminal.
//   - expired is reached by time from any non-terminal status, and can only be
//     re-opened to draft or sent by an operator.

type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "draft"
	QuoteStatusSent     QuoteStatus = "sent"
	QuoteStatusViewed   QuoteStatus = "viewed"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusDeclined QuoteStatus = "declined"
	QuoteStatusExpired  QuoteStatus = "expired"
)

// statusFlow is the full transition table. Every status lists itself so that a
// repeated update with the same status stays a legal no-op.
var statusFlow = map[QuoteStatus][]QuoteStatus{
	QuoteStatusDraft:    {QuoteStatusDraft, QuoteStatusSent, QuoteStatusDeclined, QuoteStatusExpired},
	QuoteStatusSent:     {QuoteStatusSent, QuoteStatusViewed, QuoteStatusAccepted, QuoteStatusDeclined, QuoteStatusExpired},
	QuoteStatusViewed:   {QuoteStatusViewed, QuoteStatusAccepted, QuoteStatusDeclined, QuoteStatusExpired},
	QuoteStatusAccepted: {QuoteStatusAccepted},
	QuoteStatusDeclined: {QuoteStatusDeclined},
	QuoteStatusExpired:  {QuoteStatusExpired, QuoteStatusDraft, QuoteStatusSent},
}

// QuoteStatuses lists every valid status.
func QuoteStatuses() []QuoteStatus {
	return []QuoteStatus{
		QuoteStatusDraft,
		QuoteStatusSent,
		QuoteStatusViewed,
		QuoteStatusAccepted,
		QuoteStatusDeclined,
		QuoteStatusExpired,
	}
}

// NormalizeStatus maps an unrecognized status string to draft.
func NormalizeStatus(s string) QuoteStatus {
	status := QuoteStatus(s)
	if _, ok := statusFlow[status]; ok {
		return status
	}
	return QuoteStatusDraft
}

// AllowedTransitions returns the target statuses an operator may select from
// the given status. Unknown statuses are treated as draft.
func AllowedTransitions(status QuoteStatus) []QuoteStatus {
	flow, ok := statusFlow[status]
	if !ok {
		flow = statusFlow[QuoteStatusDraft]
	}
	out := make([]QuoteStatus, len(flow))
	copy(out, flow)
	return out
}

// CanTransition reports whether the transition table allows moving from one
// status to another.
func CanTransition(from, to QuoteStatus) bool {
	for _, next := range AllowedTransitions(from) {
		if next == to {
			return true
		}
	}
	return false
}

// Expirable reports whether a status is subject to time-based auto-expiry.
func Expirable(status QuoteStatus) bool {
	switch status {
	case QuoteStatusDraft, QuoteStatusSent, QuoteStatusViewed:
		return true
	}
	return false
}

// Quote is the persisted quote record. Its event, selection and totals fields
// are immutable snapshots taken at submission; only status, UpdatedAt and the
// lifecycle map change afterwards.

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type EventDetails struct {
	Date   string  `json:"date"`
	Time   string  `json:"time"`
	Venue  string  `json:"venue"`
	Guests int     `json:"guests"`
	Hours  float64 `json:"hours"`
	Style  string  `json:"style"`
}

type Selection struct {
	PackageID   string   `json:"package_id"`
	PackageName string   `json:"package_name"`
	Addons      []string `json:"addons"`
	Rentals     []string `json:"rentals"`
	MilesRT     float64  `json:"miles_rt"`
	PayMethod   string   `json:"pay_method"`
}

type PaymentInfo struct {
	DepositLink string `json:"deposit_link"`
}

// Totals is the persisted pricing snapshot. Invariant:
// Total = Base+Addons+Rentals+Labor+Travel+ServiceFee+Tax.
type Totals struct {
	Base       float64 `json:"base"`
	Addons     float64 `json:"addons"`
	Rentals    float64 `json:"rentals"`
	Labor      float64 `json:"labor"`
	Travel     float64 `json:"travel"`
	ServiceFee float64 `json:"service_fee"`
	Tax        float64 `json:"tax"`
	Total      float64 `json:"total"`
	Deposit    float64 `json:"deposit"`
	CardFee    float64 `json:"card_fee"`
}

type Quote struct {
	ID          string                    `json:"id"`
	QuoteNumber string                    `json:"quote_number"`
	Customer    Customer                  `json:"customer"`
	Event       EventDetails              `json:"event"`
	Selection   Selection                 `json:"selection"`
	Payment     PaymentInfo               `json:"payment"`
	Totals      Totals                    `json:"totals"`
	Status      QuoteStatus               `json:"status"`
	Source      string                    `json:"source"`
	CreatedAt   time.Time                 `json:"created_at"`
	ExpiresAt   time.Time                 `json:"expires_at"`
	UpdatedAt   time.Time                 `json:"updated_at"`
	Lifecycle   map[QuoteStatus]time.Time `json:"lifecycle"`
}

// ExpiryDue reports whether the quote should auto-expire at the given instant:
// an expirable status whose validity window has strictly passed.
func (q Quote) ExpiryDue(now time.Time) bool {
	return Expirable(q.Status) && q.ExpiresAt.Before(now)
}
