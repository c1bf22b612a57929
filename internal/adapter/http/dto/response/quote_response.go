package response

import (
	"time"

	"catering_quotes/internal/domain/entities"
	"catering_quotes/internal/domain/pricing"
	"catering_quotes/internal/usecase"
)

type TotalsResponse struct {
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

// PreviewResponse is the live pricing breakdown for an event form.
type PreviewResponse struct {
	PackageID      string         `json:"package_id"`
	PackageName    string         `json:"package_name"`
	Guests         int            `json:"guests"`
	Servers        int            `json:"servers"`
	Chefs          int            `json:"chefs"`
	Totals         TotalsResponse `json:"totals"`
	TotalDisplay   string         `json:"total_display"`
	DepositDisplay string         `json:"deposit_display"`
	Source         string         `json:"source"`
}

func FromPricingResult(res pricing.Result, source string) PreviewResponse {
	return PreviewResponse{
		PackageID:      res.SelectedPackage.ID,
		PackageName:    res.SelectedPackage.Name,
		Guests:         res.Guests,
		Servers:        res.Servers,
		Chefs:          res.Chefs,
		Totals:         TotalsResponse(res.Totals),
		TotalDisplay:   pricing.Currency(res.Totals.Total),
		DepositDisplay: pricing.Currency(res.Totals.Deposit),
		Source:         source,
	}
}

type SubmitResponse struct {
	ID          string `json:"id"`
	QuoteNumber string `json:"quote_number"`
	Storage     string `json:"storage"`
}

func FromSubmitResult(res usecase.SubmitResult) SubmitResponse {
	return SubmitResponse{
		ID:          res.ID,
		QuoteNumber: res.QuoteNumber,
		Storage:     res.Storage,
	}
}

type QuoteResponse struct {
	ID                 string                `json:"id"`
	QuoteNumber        string                `json:"quote_number"`
	Customer           entities.Customer     `json:"customer"`
	Event              entities.EventDetails `json:"event"`
	Selection          entities.Selection    `json:"selection"`
	Payment            entities.PaymentInfo  `json:"payment"`
	Totals             TotalsResponse        `json:"totals"`
	Status             string                `json:"status"`
	Source             string                `json:"source"`
	CreatedAt          time.Time             `json:"created_at"`
	ExpiresAt          time.Time             `json:"expires_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
	Lifecycle          map[string]time.Time  `json:"lifecycle"`
	AllowedTransitions []string              `json:"allowed_transitions"`
}

func FromQuote(q entities.Quote) QuoteResponse {
	lifecycle := make(map[string]time.Time, len(q.Lifecycle))
	for status, at := range q.Lifecycle {
		lifecycle[string(status)] = at
	}
	allowed := entities.AllowedTransitions(entities.NormalizeStatus(string(q.Status)))
	transitions := make([]string, len(allowed))
	for i, s := range allowed {
		transitions[i] = string(s)
	}
	return QuoteResponse{
		ID:                 q.ID,
		QuoteNumber:        q.QuoteNumber,
		Customer:           q.Customer,
		Event:              q.Event,
		Selection:          q.Selection,
		Payment:            q.Payment,
		Totals:             TotalsResponse(q.Totals),
		Status:             string(q.Status),
		Source:             q.Source,
		CreatedAt:          q.CreatedAt,
		ExpiresAt:          q.ExpiresAt,
		UpdatedAt:          q.UpdatedAt,
		Lifecycle:          lifecycle,
		AllowedTransitions: transitions,
	}
}

type HistoryResponse struct {
	Source string          `json:"source"`
	Quotes []QuoteResponse `json:"quotes"`
}

func FromHistory(res usecase.HistoryResult) HistoryResponse {
	quotes := make([]QuoteResponse, 0, len(res.Quotes))
	for _, q := range res.Quotes {
		quotes = append(quotes, FromQuote(q))
	}
	return HistoryResponse{Source: res.Source, Quotes: quotes}
}
