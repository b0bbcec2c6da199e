package payment

import (
	"fmt"
	"time"

	"mentormatch/models"
	"mentormatch/utils"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/refund"
	"go.uber.org/zap"
)

// RefundBooking refunds the successful charge of a cancelled, refund-eligible
// booking. A no-op when nothing was paid.
func (s *DefaultPaymentService) RefundBooking(bookingID string) error {
	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return fmt.Errorf("failed to load booking: %w", err)
	}
	if b == nil {
		return fmt.Errorf("booking not found")
	}
	if b.Status != models.BookingStatusCancelled || b.Cancellation == nil {
		return fmt.Errorf("only cancelled bookings can be refunded")
	}
	if !b.Cancellation.RefundEligible {
		return fmt.Errorf("cancellation was inside the notice period; not refund-eligible")
	}

	txn, err := s.PaymentRepo.GetTransactionByBookingID(bookingID)
	if err != nil {
		return fmt.Errorf("failed to resolve transaction: %w", err)
	}
	if txn == nil || txn.Status != models.TransactionSucceeded {
		return nil
	}
	if txn.PaymentIntentID == "" {
		return fmt.Errorf("transaction has no payment intent to refund")
	}

	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(txn.PaymentIntentID),
		Reason:        stripe.String(string(stripe.RefundReasonRequestedByCustomer)),
	}
	params.ReverseTransfer = stripe.Bool(true)
	params.RefundApplicationFee = stripe.Bool(true)

	r, err := refund.New(params)
	if err != nil {
		utils.GetLogger().Error("failed to create refund",
			zap.String("bookingID", bookingID), zap.Error(err))
		return fmt.Errorf("failed to create refund: %w", err)
	}

	txn.Status = models.TransactionRefunded
	txn.RefundID = r.ID
	txn.UpdatedAt = time.Now()
	if err := s.PaymentRepo.UpdateTransaction(txn); err != nil {
		return fmt.Errorf("failed to record refund: %w", err)
	}

	utils.GetLogger().Info("booking refunded",
		zap.String("bookingID", bookingID),
		zap.Int64("amountCents", txn.AmountCents))
	return nil
}

// Tip sends a one-off payment to a mentor's connected account.
func (s *DefaultPaymentService) Tip(fromProfileID string, req TipRequest) (*models.Tip, error) {
	if req.AmountCents <= 0 {
		return nil, fmt.Errorf("tip amount must be positive")
	}
	if fromProfileID == req.MentorID {
		return nil, fmt.Errorf("cannot tip yourself")
	}

	mentorProfile, err := s.ProfileRepo.GetByID(req.MentorID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch mentor: %w", err)
	}
	if mentorProfile == nil || !mentorProfile.IsMentor {
		return nil, fmt.Errorf("mentor not found")
	}
	acct, err := s.PaymentRepo.GetAccountByUserID(mentorProfile.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load mentor payout account: %w", err)
	}
	if acct == nil || !acct.ChargesEnabled {
		return nil, fmt.Errorf("mentor has not completed payout onboarding")
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.AmountCents),
		Currency: stripe.String(req.Currency),
		TransferData: &stripe.PaymentIntentTransferDataParams{
			Destination: stripe.String(acct.StripeAccountID),
		},
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("tip_from", fromProfileID)
	params.AddMetadata("tip_to", req.MentorID)

	intent, err := paymentintent.New(params)
	if err != nil {
		utils.GetLogger().Error("failed to create tip payment intent", zap.Error(err))
		return nil, fmt.Errorf("failed to create tip: %w", err)
	}

	tip := &models.Tip{
		ID:              uuid.New().String(),
		FromUserID:      fromProfileID,
		ToUserID:        req.MentorID,
		AmountCents:     req.AmountCents,
		Currency:        req.Currency,
		Message:         req.Message,
		PaymentIntentID: intent.ID,
		CreatedAt:       time.Now(),
	}
	if err := s.PaymentRepo.CreateTip(tip); err != nil {
		return nil, fmt.Errorf("failed to record tip: %w", err)
	}
	return tip, nil
}

// ListTips returns the tips a mentor has received.
func (s *DefaultPaymentService) ListTips(mentorID string) ([]models.Tip, error) {
	return s.PaymentRepo.ListTipsByMentor(mentorID)
}
