// Package payment creates card-payment intents with an external gateway.
package payment

import (
	"context"
	"fmt"
	"net/http"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Intent is the gateway's handle for a pending card payment.
type Intent struct {
	ID           string
	ClientSecret string
}

// Gateway creates payment intents. Amounts are in the currency's minor unit.
type Gateway interface {
	CreatePaymentIntent(ctx context.Context, amount int64, currency string) (Intent, error)
}

// StripeGateway is a Gateway backed by the Stripe API.
type StripeGateway struct {
	api *client.API
}

// NewStripe builds a gateway whose HTTP calls are traced.
// baseURL overrides the API endpoint and is empty in production.
func NewStripe(secretKey, baseURL string) *StripeGateway {
	cfg := &stripe.BackendConfig{
		HTTPClient:        &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		MaxNetworkRetries: stripe.Int64(2),
	}
	if baseURL != "" {
		cfg.URL = stripe.String(baseURL)
	}
	backends := &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, cfg),
		Connect: stripe.GetBackendWithConfig(stripe.ConnectBackend, cfg),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, cfg),
	}
	return &StripeGateway{api: client.New(secretKey, backends)}
}

var _ Gateway = (*StripeGateway)(nil)

func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, amount int64, currency string) (Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return Intent{}, fmt.Errorf("create payment intent: %w", err)
	}
	return Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}
