package request

import (
	"strings"

	"catering_quotes/internal/domain/entities"
)

// QuoteRequest is the event form payload accepted by the preview and submit
// endpoints. Guest clamping and id resolution happen in the domain; the DTO
// only tidies strings.
type QuoteRequest struct {
	Guests      int      `json:"guests"`
	Hours       float64  `json:"hours"`
	Style       string   `json:"style"`
	Venue       string   `json:"venue"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	PackageID   string   `json:"package_id"`
	Addons      []string `json:"addons"`
	Rentals     []string `json:"rentals"`
	MilesRT     float64  `json:"miles_rt"`
	PayMethod   string   `json:"pay_method"`
	DepositLink string   `json:"deposit_link"`
}

func (r QuoteRequest) ToEventForm() entities.EventForm {
	payMethod := strings.TrimSpace(r.PayMethod)
	if payMethod != entities.PayMethodCard {
		payMethod = entities.PayMethodBankTransfer
	}
	return entities.EventForm{
		Guests:      r.Guests,
		Hours:       r.Hours,
		Style:       strings.TrimSpace(r.Style),
		Venue:       strings.TrimSpace(r.Venue),
		Date:        strings.TrimSpace(r.Date),
		Time:        strings.TrimSpace(r.Time),
		Name:        strings.TrimSpace(r.Name),
		Email:       strings.TrimSpace(r.Email),
		PackageID:   strings.TrimSpace(r.PackageID),
		Addons:      r.Addons,
		Rentals:     r.Rentals,
		MilesRT:     r.MilesRT,
		PayMethod:   payMethod,
		DepositLink: strings.TrimSpace(r.DepositLink),
	}
}

// StatusUpdateRequest is the payload for quote status transitions.
type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}
