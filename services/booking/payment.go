package booking

import (
	"context"
	"fmt"
	"math"

	"localpro/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// PaymentHandler creates payment intents with the processor. The booking is
// persisted as PENDING_PAYMENT; the client confirms the intent out of band
// and a webhook (processor-side) flips the status to CONFIRMED.
type PaymentHandler interface {
	CreatePaymentIntent(ctx context.Context, req models.PaymentRequest) (*models.PaymentIntent, error)
}

// StripePaymentHandler is the Stripe-backed implementation. The global
// stripe.Key is set in main from config.
type StripePaymentHandler struct {
	logger *zap.Logger
}

func NewPaymentHandler(logger *zap.Logger) *StripePaymentHandler {
	return &StripePaymentHandler{logger: logger}
}

func (h *StripePaymentHandler) CreatePaymentIntent(ctx context.Context, req models.PaymentRequest) (*models.PaymentIntent, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("invalid payment amount %.2f", req.Amount)
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(math.Round(req.Amount * 100))), // minor units
		Currency: stripe.String(req.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: map[string]string{
			"bookingId": req.BookingID,
			"clientId":  req.ClientID,
		},
	}
	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	h.logger.Info("Payment intent created",
		zap.String("bookingId", req.BookingID),
		zap.String("paymentIntentId", pi.ID))

	return &models.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
	}, nil
}
