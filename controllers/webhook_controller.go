package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	apperrors "booking-service/errors"
	"booking-service/models"
	aws_pkg "booking-service/pkg/aws"
	"booking-service/repository"
	"booking-service/services"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"
)

const checkoutSessionCompleted stripe.EventType = "checkout.session.completed"

const releaseTimeout = 5 * time.Second

// Response bodies the provider sees.
const (
	msgBookingSuccessful = "Booking successful"
	msgEventReceived     = "Event Received"
	msgMissingMetadata   = "Metadata is missing"
)

// WebhookVerifier turns a raw delivery into a verified provider event.
type WebhookVerifier interface {
	ParseWebhook(r *http.Request) (stripe.Event, error)
}

// CheckoutApplier stores the booking carried by a completed checkout.
type CheckoutApplier interface {
	ApplyCheckout(ctx context.Context, metadata map[string]string, ref services.CheckoutRef) (*models.Booking, error)
}

type WebhookController struct {
	Verifier WebhookVerifier
	Bookings CheckoutApplier
	// Dedup is nil unless replay protection is enabled.
	Dedup   repository.EventDeduplicator
	Metrics services.MetricsRecorder
	Logger  *zap.Logger
	// VerificationFailureStatus is 500 (compatible) or 400.
	VerificationFailureStatus int
}

// StripeWebhook verifies a Stripe delivery and dispatches it by event type.
func (wc *WebhookController) StripeWebhook(c *gin.Context) {
	event, err := wc.Verifier.ParseWebhook(c.Request)
	if err != nil {
		wc.rejectDelivery(c, err)
		return
	}

	wc.Logger.Info("Processing Stripe webhook",
		zap.String("event_type", string(event.Type)),
		zap.String("event_id", event.ID),
	)

	switch event.Type {
	case checkoutSessionCompleted:
		wc.handleCheckoutCompleted(c, event)
		return
	default:
		wc.Logger.Info("Unhandled event type", zap.String("event_type", string(event.Type)))
		wc.record(c.Request.Context(), aws_pkg.MetricWebhookEventsIgnored)
	}

	c.JSON(http.StatusOK, msgEventReceived)
}

func (wc *WebhookController) handleCheckoutCompleted(c *gin.Context, event stripe.Event) {
	if event.Data == nil || len(event.Data.Raw) == 0 {
		wc.rejectDelivery(c, errors.New("event has no data object"))
		return
	}
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		wc.rejectDelivery(c, fmt.Errorf("invalid checkout session: %w", err))
		return
	}

	ctx := c.Request.Context()
	claimed := false
	if wc.Dedup != nil {
		ok, err := wc.Dedup.Claim(ctx, event.ID)
		switch {
		case err != nil:
			// Redis being down must not block bookings.
			wc.Logger.Warn("Event dedup unavailable, applying without claim", zap.String("event_id", event.ID), zap.Error(err))
		case !ok:
			wc.Logger.Info("Skipping duplicate checkout webhook", zap.String("event_id", event.ID))
			wc.record(ctx, aws_pkg.MetricWebhookDuplicates)
			c.JSON(http.StatusOK, msgEventReceived)
			return
		default:
			claimed = true
		}
	}

	_, err := wc.Bookings.ApplyCheckout(ctx, sess.Metadata, services.CheckoutRef{EventID: event.ID, SessionID: sess.ID})
	if err == nil {
		c.JSON(http.StatusOK, msgBookingSuccessful)
		return
	}

	if claimed {
		wc.releaseClaim(ctx, event.ID)
	}

	var mdErr *services.MetadataError
	switch {
	case errors.Is(err, services.ErrMissingMetadata):
		wc.Logger.Warn("Missing metadata in checkout session", zap.String("session_id", sess.ID))
		c.String(http.StatusBadRequest, msgMissingMetadata)
	case errors.As(err, &mdErr):
		wc.Logger.Warn("Invalid metadata in checkout session",
			zap.String("session_id", sess.ID),
			zap.String("field", mdErr.Field),
			zap.Error(err),
		)
		c.String(http.StatusBadRequest, "Invalid metadata: %s", mdErr.Error())
	default:
		wc.Logger.Error("Failed to apply checkout",
			zap.String("event_id", event.ID),
			zap.String("session_id", sess.ID),
			zap.Error(err),
		)
		appErr := apperrors.ErrBookingFailed.Wrap(err)
		_ = c.Error(appErr)
		c.JSON(appErr.Code, appErr)
	}
}

// releaseClaim frees the event id so a redelivery can apply it. The request
// context is usually already done here, so the release gets its own deadline.
func (wc *WebhookController) releaseClaim(ctx context.Context, eventID string) {
	releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
	defer cancel()
	if err := wc.Dedup.Release(releaseCtx, eventID); err != nil {
		wc.Logger.Error("Failed to release event claim", zap.String("event_id", eventID), zap.Error(err))
	}
}

// rejectDelivery answers a delivery that failed verification or could not be decoded.
func (wc *WebhookController) rejectDelivery(c *gin.Context, err error) {
	status := wc.VerificationFailureStatus
	if status == 0 || errors.Is(err, services.ErrWebhookSecretNotConfigured) {
		status = http.StatusInternalServerError
	}
	wc.Logger.Warn("Stripe webhook verification failed", zap.Int("status", status), zap.Error(err))
	wc.record(c.Request.Context(), aws_pkg.MetricWebhookVerificationFailed)
	c.String(status, "Webhook Error: %s", err.Error())
}

func (wc *WebhookController) record(ctx context.Context, metric string) {
	if wc.Metrics == nil {
		return
	}
	_ = wc.Metrics.RecordCount(ctx, metric, map[string]string{"Service": "booking-service"})
}
