package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"booking-service/models"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/client"
	"github.com/stripe/stripe-go/v80/webhook"
)

// StripeSignatureHeader carries the provider signature on webhook deliveries.
const StripeSignatureHeader = "Stripe-Signature"

// maxWebhookBodyBytes matches the payload limit Stripe recommends for webhook handlers.
const maxWebhookBodyBytes = int64(65536)

var (
	// ErrWebhookSecretNotConfigured means the service was started without a
	// webhook signing secret; no payload can be verified.
	ErrWebhookSecretNotConfigured = errors.New("stripe webhook secret is not configured")
	// ErrMissingSignature means the delivery had no Stripe-Signature header.
	ErrMissingSignature = errors.New("missing " + StripeSignatureHeader + " header")
)

// WebhookOptions tune signature verification.
type WebhookOptions struct {
	Tolerance                time.Duration
	IgnoreAPIVersionMismatch bool
}

// StripeService verifies webhook deliveries and creates checkout sessions
// through an injected Stripe API client.
type StripeService struct {
	api           *client.API
	webhookSecret string
	opts          WebhookOptions
	currency      string
}

// NewStripeService builds the service around a client created once at startup.
func NewStripeService(api *client.API, webhookSecret, currency string, opts WebhookOptions) *StripeService {
	if opts.Tolerance <= 0 {
		opts.Tolerance = webhook.DefaultTolerance
	}
	return &StripeService{api: api, webhookSecret: webhookSecret, opts: opts, currency: currency}
}

// NewStripeAPI returns a Stripe client bound to secretKey.
func NewStripeAPI(secretKey string) *client.API {
	return client.New(secretKey, nil)
}

// ParseWebhook reads the raw body, restores it on r, and returns the verified event.
func (s *StripeService) ParseWebhook(r *http.Request) (stripe.Event, error) {
	var event stripe.Event
	if s.webhookSecret == "" {
		return event, ErrWebhookSecretNotConfigured
	}

	sigHeader := r.Header.Get(StripeSignatureHeader)
	if sigHeader == "" {
		return event, ErrMissingSignature
	}

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBodyBytes+1))
	if err != nil {
		return event, fmt.Errorf("failed to read request body: %w", err)
	}
	if int64(len(payload)) > maxWebhookBodyBytes {
		return event, fmt.Errorf("request body exceeds %d bytes", maxWebhookBodyBytes)
	}
	r.Body = io.NopCloser(bytes.NewBuffer(payload))

	return webhook.ConstructEventWithOptions(payload, sigHeader, s.webhookSecret, webhook.ConstructEventOptions{
		Tolerance:                s.opts.Tolerance,
		IgnoreAPIVersionMismatch: s.opts.IgnoreAPIVersionMismatch,
	})
}

// CreateCheckoutSession opens a one-line-item payment session for the stay.
// The booking travels in the session metadata and comes back on
// checkout.session.completed.
func (s *StripeService) CreateCheckoutSession(ctx context.Context, req models.BookingRequest, roomName, successURL, cancelURL string) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(successURL),
		CancelURL:         stripe.String(cancelURL),
		ClientReferenceID: stripe.String(req.User),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(s.currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(roomName),
					},
					UnitAmount: stripe.Int64(toMinorUnits(req.TotalPrice)),
				},
				Quantity: stripe.Int64(1),
			},
		},
		Metadata: EncodeBookingMetadata(req),
	}
	params.Context = ctx

	return s.api.CheckoutSessions.New(params)
}

func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
