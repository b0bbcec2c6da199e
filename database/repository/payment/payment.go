package paymentRepo

import "mentormatch/models"

// PaymentRepository defines methods for transaction, payout-account and tip
// data access.
type PaymentRepository interface {
	// GetTransactionByID retrieves a transaction by ID. Returns (nil, nil) when absent.
	GetTransactionByID(id string) (*models.Transaction, error)
	// GetTransactionByBookingID retrieves the latest transaction for a booking.
	GetTransactionByBookingID(bookingID string) (*models.Transaction, error)
	// GetTransactionByCheckoutSession resolves a Stripe checkout session ID to
	// its transaction; used by the webhook handler.
	GetTransactionByCheckoutSession(checkoutSessionID string) (*models.Transaction, error)
	// GetTransactionByPaymentIntent resolves a Stripe payment intent ID to its
	// transaction; used by the webhook handler.
	GetTransactionByPaymentIntent(paymentIntentID string) (*models.Transaction, error)
	// CreateTransaction inserts a new transaction record.
	CreateTransaction(txn *models.Transaction) error
	// UpdateTransaction persists changes to an existing transaction.
	UpdateTransaction(txn *models.Transaction) error
	// ListTransactionsByUser returns a user's transactions, newest first.
	ListTransactionsByUser(userID string) ([]models.Transaction, error)

	// GetAccountByUserID retrieves a mentor's payout account. Returns (nil, nil) when absent.
	GetAccountByUserID(userID string) (*models.PaymentAccount, error)
	// UpsertAccount creates or replaces a mentor's payout account.
	UpsertAccount(account *models.PaymentAccount) error

	// CreateTip inserts a new tip record.
	CreateTip(tip *models.Tip) error
	// ListTipsByMentor returns tips received by a mentor, newest first.
	ListTipsByMentor(mentorID string) ([]models.Tip, error)
}
