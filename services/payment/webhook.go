package payment

import (
	"encoding/json"
	"fmt"
	"time"

	"mentormatch/config"
	"mentormatch/models"
	"mentormatch/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// HandleWebhookEvent verifies the Stripe signature and applies the event.
// Unhandled event types are acknowledged and ignored.
func (s *DefaultPaymentService) HandleWebhookEvent(payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, config.AppConfig.StripeWebhookKey)
	if err != nil {
		return fmt.Errorf("webhook signature verification failed: %w", err)
	}

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return fmt.Errorf("failed to decode checkout session: %w", err)
		}
		return s.markCheckoutCompleted(&sess)
	case "checkout.session.expired":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return fmt.Errorf("failed to decode checkout session: %w", err)
		}
		return s.markCheckoutFailed(sess.ID)
	case "payment_intent.payment_failed":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			return fmt.Errorf("failed to decode payment intent: %w", err)
		}
		return s.markIntentFailed(intent.ID)
	case "charge.refunded":
		var charge stripe.Charge
		if err := json.Unmarshal(event.Data.Raw, &charge); err != nil {
			return fmt.Errorf("failed to decode charge: %w", err)
		}
		if charge.PaymentIntent == nil {
			return nil
		}
		return s.markIntentRefunded(charge.PaymentIntent.ID)
	default:
		utils.GetLogger().Debug("ignoring stripe event", zap.String("type", string(event.Type)))
		return nil
	}
}

func (s *DefaultPaymentService) markCheckoutCompleted(sess *stripe.CheckoutSession) error {
	txn, err := s.PaymentRepo.GetTransactionByCheckoutSession(sess.ID)
	if err != nil {
		return fmt.Errorf("failed to resolve transaction: %w", err)
	}
	if txn == nil {
		utils.GetLogger().Warn("checkout completed for unknown session", zap.String("sessionID", sess.ID))
		return nil
	}
	if txn.Status == models.TransactionSucceeded {
		return nil
	}

	txn.Status = models.TransactionSucceeded
	if sess.PaymentIntent != nil {
		txn.PaymentIntentID = sess.PaymentIntent.ID
	}
	txn.UpdatedAt = time.Now()
	if err := s.PaymentRepo.UpdateTransaction(txn); err != nil {
		return fmt.Errorf("failed to mark transaction succeeded: %w", err)
	}

	utils.GetLogger().Info("booking payment completed",
		zap.String("bookingID", txn.BookingID),
		zap.Int64("amountCents", txn.AmountCents))
	return nil
}

func (s *DefaultPaymentService) markCheckoutFailed(checkoutSessionID string) error {
	txn, err := s.PaymentRepo.GetTransactionByCheckoutSession(checkoutSessionID)
	if err != nil {
		return fmt.Errorf("failed to resolve transaction: %w", err)
	}
	if txn == nil || txn.Status != models.TransactionPending {
		return nil
	}
	txn.Status = models.TransactionFailed
	txn.UpdatedAt = time.Now()
	return s.PaymentRepo.UpdateTransaction(txn)
}

func (s *DefaultPaymentService) markIntentFailed(paymentIntentID string) error {
	txn, err := s.PaymentRepo.GetTransactionByPaymentIntent(paymentIntentID)
	if err != nil {
		return fmt.Errorf("failed to resolve transaction: %w", err)
	}
	if txn == nil || txn.Status != models.TransactionPending {
		return nil
	}
	txn.Status = models.TransactionFailed
	txn.UpdatedAt = time.Now()
	return s.PaymentRepo.UpdateTransaction(txn)
}

// markIntentRefunded covers refunds issued from the Stripe dashboard; refunds
// issued through RefundBooking already update the transaction directly.
func (s *DefaultPaymentService) markIntentRefunded(paymentIntentID string) error {
	txn, err := s.PaymentRepo.GetTransactionByPaymentIntent(paymentIntentID)
	if err != nil {
		return fmt.Errorf("failed to resolve transaction: %w", err)
	}
	if txn == nil || txn.Status == models.TransactionRefunded {
		return nil
	}
	txn.Status = models.TransactionRefunded
	txn.UpdatedAt = time.Now()
	if err := s.PaymentRepo.UpdateTransaction(txn); err != nil {
		return fmt.Errorf("failed to mark transaction refunded: %w", err)
	}

	utils.GetLogger().Info("booking payment refunded",
		zap.String("bookingID", txn.BookingID))
	return nil
}
