package payment

import (
	"context"
	"net/http"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

// StripeProvider creates hosted checkout sessions against Stripe. The key is
// held on the client rather than in the SDK's package-level global, and the
// HTTP backend carries a bounded timeout so a slow provider cannot hang the
// request.
type StripeProvider struct {
	sessions *session.Client
}

func NewStripeProvider(secretKey string, timeout time.Duration) *StripeProvider {
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		HTTPClient: &http.Client{Timeout: timeout},
	})
	return &StripeProvider{
		sessions: &session.Client{B: backend, Key: secretKey},
	}
}

func (p *StripeProvider) CreateSession(ctx context.Context, sp SessionParams) (*ProviderSession, error) {
	params := &stripe.CheckoutSessionParams{
		Params:            stripe.Params{Context: ctx},
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		ClientReferenceID: stripe.String(sp.ClientRef),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(sp.Currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String("Turf Booking Advance"),
					Description: stripe.String(sp.Description),
				},
				UnitAmount: stripe.Int64(sp.AmountMinor),
			},
			Quantity: stripe.Int64(1),
		}},
		SuccessURL: stripe.String(sp.SuccessURL),
		CancelURL:  stripe.String(sp.CancelURL),
	}
	for k, v := range sp.Metadata {
		params.AddMetadata(k, v)
	}

	sess, err := p.sessions.New(params)
	if err != nil {
		return nil, err
	}
	return &ProviderSession{ID: sess.ID, URL: sess.URL}, nil
}
