package entities

const (
	PayMethodCard         = "card"
	PayMethodBankTransfer = "bank_transfer"

	// MaxGuests is the ceiling guest counts are clamped to before pricing.
	MaxGuests = 400
)

// Service styles drive the staffing rule table in the pricing package.
const (
	StyleBuffet   = "Buffet"
	StylePlated   = "Plated"
	StyleStations = "Stations"
	StyleDropOff  = "Drop-off"
)

// EventForm is the ephemeral quote request input. It is never persisted as-is;
// submission snapshots it into a Quote.
type EventForm struct {
	Guests      int
	Hours       float64
	Style       string
	Venue       string
	Date        string
	Time        string
	Name        string
	Email       string
	PackageID   string
	Addons      []string
	Rentals     []string
	MilesRT     float64
	PayMethod   string
	DepositLink string
}

// ClampedGuests returns the guest count bounded to [0, MaxGuests].
func (f EventForm) ClampedGuests() int {
	if f.Guests < 0 {
		return 0
	}
	if f.Guests > MaxGuests {
		return MaxGuests
	}
	return f.Guests
}
