package interfaces

import "context"

// IPaymentLinkProvider abstracts external payment providers (e.g. Mercado
// Pago) used to generate a hosted checkout link for the quote deposit. The
// link is informational on the quote; a failure to create one must never fail
// the submission.
type IPaymentLinkProvider interface {
	CreateDepositLink(ctx context.Context, quoteNumber string, amount float64) (string, error)
}
