package payments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"catering_quotes/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")

// MercadoPagoLinkProvider creates hosted checkout preferences for quote
// deposits. The returned init point URL is stored on the quote as its deposit
// payment link.
type MercadoPagoLinkProvider struct {
	client preference.Client
}

var _ interfaces.IPaymentLinkProvider = (*MercadoPagoLinkProvider)(nil)

func NewMercadoPagoLinkProvider(accessToken string) (*MercadoPagoLinkProvider, error) {
	if accessToken == "" {
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, err
	}
	return &MercadoPagoLinkProvider{client: preference.NewClient(cfg)}, nil
}

func (p *MercadoPagoLinkProvider) CreateDepositLink(ctx context.Context, quoteNumber string, amount float64) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("deposit amount must be positive, got %v", amount)
	}

	resp, err := p.client.Create(ctx, preference.Request{
		Items: []preference.ItemRequest{
			{
				Title:     fmt.Sprintf("Catering deposit for quote %s", quoteNumber),
				Quantity:  1,
				UnitPrice: amount,
			},
		},
		ExternalReference: quoteNumber,
	})
	if err != nil {
		return "", err
	}

	slog.Debug("created deposit preference", "quote_number", quoteNumber, "preference_id", resp.ID)
	return resp.InitPoint, nil
}
