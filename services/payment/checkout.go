package payment

import (
	"fmt"
	"time"

	"mentormatch/config"
	"mentormatch/models"
	"mentormatch/utils"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	checkoutsession "github.com/stripe/stripe-go/v76/checkout/session"
	"go.uber.org/zap"
)

// platformFee computes the platform's cut of an amount in cents.
func platformFee(amountCents int64) int64 {
	percent := config.AppConfig.PlatformFeePercent
	if percent <= 0 {
		return 0
	}
	return amountCents * int64(percent*100) / 10000
}

// CreateCheckout opens a Stripe Checkout session for an unpaid booking. The
// charge lands on the mentor's connected account minus the platform fee.
func (s *DefaultPaymentService) CreateCheckout(menteeID string, req models.CheckoutRequest) (*models.CheckoutResponse, error) {
	b, err := s.BookingRepo.GetByID(req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if b == nil {
		return nil, fmt.Errorf("booking not found")
	}
	if menteeID != b.MenteeID {
		return nil, fmt.Errorf("only the mentee may pay for this booking")
	}
	if !b.IsActive() {
		return nil, fmt.Errorf("cannot pay for a %s booking", b.Status)
	}
	if b.PriceCents <= 0 {
		return nil, fmt.Errorf("this booking is free of charge")
	}

	if existing, err := s.PaymentRepo.GetTransactionByBookingID(b.ID); err != nil {
		return nil, fmt.Errorf("failed to check existing payments: %w", err)
	} else if existing != nil && existing.Status == models.TransactionSucceeded {
		return nil, fmt.Errorf("this booking is already paid")
	}

	mentorProfile, err := s.ProfileRepo.GetByID(b.MentorID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch mentor: %w", err)
	}
	if mentorProfile == nil {
		return nil, fmt.Errorf("mentor not found")
	}
	acct, err := s.PaymentRepo.GetAccountByUserID(mentorProfile.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load mentor payout account: %w", err)
	}
	if acct == nil || !acct.ChargesEnabled {
		return nil, fmt.Errorf("mentor has not completed payout onboarding")
	}

	fee := platformFee(b.PriceCents)
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(req.SuccessURL),
		CancelURL:          stripe.String(req.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(b.Currency),
					UnitAmount: stripe.Int64(b.PriceCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Mentoring Session"),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			ApplicationFeeAmount: stripe.Int64(fee),
			TransferData: &stripe.CheckoutSessionPaymentIntentDataTransferDataParams{
				Destination: stripe.String(acct.StripeAccountID),
			},
		},
	}
	params.AddMetadata("booking_id", b.ID)

	sess, err := checkoutsession.New(params)
	if err != nil {
		utils.GetLogger().Error("failed to create checkout session", zap.Error(err))
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	now := time.Now()
	txn := &models.Transaction{
		ID:                uuid.New().String(),
		BookingID:         b.ID,
		MenteeID:          b.MenteeID,
		MentorID:          b.MentorID,
		AmountCents:       b.PriceCents,
		PlatformFeeCents:  fee,
		MentorPayoutCents: b.PriceCents - fee,
		Currency:          b.Currency,
		Status:            models.TransactionPending,
		CheckoutSessionID: sess.ID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.PaymentRepo.CreateTransaction(txn); err != nil {
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}

	return &models.CheckoutResponse{
		CheckoutSessionID: sess.ID,
		CheckoutURL:       sess.URL,
		ExpiresAt:         time.Unix(sess.ExpiresAt, 0),
	}, nil
}

// ListTransactions returns the transactions a profile's user took part in.
func (s *DefaultPaymentService) ListTransactions(profileID string) ([]models.Transaction, error) {
	return s.PaymentRepo.ListTransactionsByUser(profileID)
}

// ListPayouts returns the mentor's succeeded transactions, the earnings side
// of the ledger.
func (s *DefaultPaymentService) ListPayouts(mentorID string) ([]models.Transaction, error) {
	txns, err := s.PaymentRepo.ListTransactionsByUser(mentorID)
	if err != nil {
		return nil, err
	}
	payouts := make([]models.Transaction, 0, len(txns))
	for _, t := range txns {
		if t.MentorID == mentorID && t.Status == models.TransactionSucceeded {
			payouts = append(payouts, t)
		}
	}
	return payouts, nil
}
