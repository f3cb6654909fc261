package booking

import (
	"fmt"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// PaymentVerifier checks that a payment reference represents a completed
// payment before a booking is confirmed.
type PaymentVerifier interface {
	Verify(paymentIntentID string) error
}

// StripeVerifier implements PaymentVerifier against the Stripe API.
// stripe.Key must be set at startup.
type StripeVerifier struct{}

func (StripeVerifier) Verify(paymentIntentID string) error {
	pi, err := paymentintent.Get(paymentIntentID, nil)
	if err != nil {
		return fmt.Errorf("failed to fetch payment intent %s: %w", paymentIntentID, err)
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return NewValidationError("payment %s has not succeeded (status %s)", paymentIntentID, pi.Status)
	}
	return nil
}
