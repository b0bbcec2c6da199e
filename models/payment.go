// models/payment.go
package models

import "time"

// Transaction statuses.
const (
	TransactionPending   = "pending"
	TransactionSucceeded = "succeeded"
	TransactionFailed    = "failed"
	TransactionRefunded  = "refunded"
)

// Transaction is a payment record tied to a booking checkout.
type Transaction struct {
	ID                string    `bson:"id" json:"id"`
	BookingID         string    `bson:"booking_id" json:"booking_id"`
	MenteeID          string    `bson:"mentee_id" json:"mentee_id"`
	MentorID          string    `bson:"mentor_id" json:"mentor_id"`
	AmountCents       int64     `bson:"amount_cents" json:"amount_cents"`
	PlatformFeeCents  int64     `bson:"platform_fee_cents" json:"platform_fee_cents"`
	MentorPayoutCents int64     `bson:"mentor_payout_cents" json:"mentor_payout_cents"`
	Currency          string    `bson:"currency" json:"currency"`
	Status            string    `bson:"status" json:"status"`
	CheckoutSessionID string    `bson:"checkout_session_id,omitempty" json:"-"`
	PaymentIntentID   string    `bson:"payment_intent_id,omitempty" json:"-"`
	RefundID          string    `bson:"refund_id,omitempty" json:"-"`
	CreatedAt         time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time `bson:"updated_at" json:"updated_at"`
}

// PaymentAccount is a mentor's Stripe Connect express account.
type PaymentAccount struct {
	UserID           string    `bson:"user_id" json:"user_id"`
	StripeAccountID  string    `bson:"stripe_account_id" json:"stripe_account_id"`
	ChargesEnabled   bool      `bson:"charges_enabled" json:"charges_enabled"`
	PayoutsEnabled   bool      `bson:"payouts_enabled" json:"payouts_enabled"`
	DetailsSubmitted bool      `bson:"details_submitted" json:"details_submitted"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time `bson:"updated_at" json:"updated_at"`
}

// Tip is a one-off payment from a mentee to a mentor outside any booking.
type Tip struct {
	ID              string    `bson:"id" json:"id"`
	FromUserID      string    `bson:"from_user_id" json:"from_user_id"`
	ToUserID        string    `bson:"to_user_id" json:"to_user_id"`
	AmountCents     int64     `bson:"amount_cents" json:"amount_cents"`
	Currency        string    `bson:"currency" json:"currency"`
	Message         string    `bson:"message,omitempty" json:"message,omitempty"`
	PaymentIntentID string    `bson:"payment_intent_id,omitempty" json:"-"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
}

// CheckoutRequest asks for a Stripe checkout session for a booking.
type CheckoutRequest struct {
	BookingID  string `json:"booking_id" binding:"required"`
	SuccessURL string `json:"success_url" binding:"required"`
	CancelURL  string `json:"cancel_url" binding:"required"`
}

// CheckoutResponse carries the hosted checkout URL back to the client.
type CheckoutResponse struct {
	CheckoutSessionID string    `json:"checkout_session_id"`
	CheckoutURL       string    `json:"checkout_url"`
	ExpiresAt         time.Time `json:"expires_at"`
}

// ConnectStatus summarises a mentor's Stripe Connect onboarding state.
type ConnectStatus struct {
	AccountID           string   `json:"account_id"`
	IsActive            bool     `json:"is_active"`
	ChargesEnabled      bool     `json:"charges_enabled"`
	PayoutsEnabled      bool     `json:"payouts_enabled"`
	DetailsSubmitted    bool     `json:"details_submitted"`
	RequirementsPending []string `json:"requirements_pending,omitempty"`
}
