package payment

import (
	bookingRepo "mentormatch/database/repository/booking"
	paymentRepo "mentormatch/database/repository/payment"
	profileRepo "mentormatch/database/repository/profile"
	userRepo "mentormatch/database/repository/user"

	"mentormatch/models"
)

// OnboardResponse carries the hosted Stripe onboarding link.
type OnboardResponse struct {
	AccountID     string `json:"account_id"`
	OnboardingURL string `json:"onboarding_url"`
}

// TipRequest is the payload for tipping a mentor outside a booking.
type TipRequest struct {
	MentorID    string `json:"mentor_id" binding:"required"`
	AmountCents int64  `json:"amount_cents" binding:"required"`
	Currency    string `json:"currency" binding:"required"`
	Message     string `json:"message"`
}

// PaymentService handles mentor payout onboarding, booking checkouts, the
// Stripe webhook, refunds and tips.
type PaymentService interface {
	OnboardMentor(profileID, refreshURL, returnURL string) (*OnboardResponse, error)
	ConnectStatus(profileID string) (*models.ConnectStatus, error)
	CreateCheckout(menteeID string, req models.CheckoutRequest) (*models.CheckoutResponse, error)
	HandleWebhookEvent(payload []byte, signature string) error
	RefundBooking(bookingID string) error
	Tip(fromProfileID string, req TipRequest) (*models.Tip, error)
	ListTransactions(profileID string) ([]models.Transaction, error)
	ListPayouts(mentorID string) ([]models.Transaction, error)
	ListTips(mentorID string) ([]models.Tip, error)
}

// DefaultPaymentService implements PaymentService against the Stripe API.
type DefaultPaymentService struct {
	PaymentRepo paymentRepo.PaymentRepository
	BookingRepo bookingRepo.BookingRepository
	ProfileRepo profileRepo.ProfileRepository
	UserRepo    userRepo.UserRepository
}
