package checkout

import (
	"context"
	"fmt"
	"strings"

	"edupath/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"go.uber.org/zap"
)

// StripeGateway is the production checkout binding. It creates a hosted
// Stripe Checkout session from the gateway config; stripe.Key is set once at
// application start.
type StripeGateway struct {
	SuccessURL string
	CancelURL  string
	Logger     *zap.Logger
}

func NewStripeGateway(successURL, cancelURL string, logger *zap.Logger) *StripeGateway {
	return &StripeGateway{
		SuccessURL: successURL,
		CancelURL:  cancelURL,
		Logger:     logger,
	}
}

// Open creates the hosted checkout session and returns its URL.
func (g *StripeGateway) Open(ctx context.Context, cfg models.CheckoutConfig) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		ClientReferenceID: stripe.String(cfg.OrderID),
		CustomerEmail:     stripe.String(cfg.Prefill.Email),
		SuccessURL:        stripe.String(g.SuccessURL),
		CancelURL:         stripe.String(g.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(cfg.Currency)),
					UnitAmount: stripe.Int64(cfg.Amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(cfg.Name),
						Description: stripe.String(cfg.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx

	sess, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to open checkout session: %w", err)
	}

	g.Logger.Info("checkout session opened",
		zap.String("orderID", cfg.OrderID),
		zap.Int64("amount", cfg.Amount),
		zap.String("currency", cfg.Currency))
	return sess.URL, nil
}
