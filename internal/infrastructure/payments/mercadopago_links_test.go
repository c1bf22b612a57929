package payments

import (
	"context"
	"errors"
	"testing"
)

func TestNewMercadoPagoLinkProvider(t *testing.T) {
	t.Run("missing access token", func(t *testing.T) {
		_, err := NewMercadoPagoLinkProvider("")
		if !errors.Is(err, ErrMissingMercadoPagoAccessToken) {
			t.Fatalf("expected ErrMissingMercadoPagoAccessToken, got %v", err)
		}
	})

	t.Run("with access token", func(t *testing.T) {
		provider, err := NewMercadoPagoLinkProvider("TEST-token")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if provider == nil {
			t.Fatal("expected a provider")
		}
	})
}

func TestMercadoPagoLinkProvider_CreateDepositLink_RejectsNonPositiveAmount(t *testing.T) {
	provider, err := NewMercadoPagoLinkProvider("TEST-token")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for _, amount := range []float64{0, -10} {
		if _, err := provider.CreateDepositLink(context.Background(), "Q-250615-0001", amount); err == nil {
			t.Fatalf("expected error for amount %v, got nil", amount)
		}
	}
}
