package paymentRepo

import (
	"context"
	"fmt"
	"time"

	"mentormatch/database"
	"mentormatch/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPaymentRepo implements PaymentRepository using MongoDB.
type MongoPaymentRepo struct {
	txnColl     *mongo.Collection
	accountColl *mongo.Collection
	tipColl     *mongo.Collection
}

// NewMongoPaymentRepo creates a new instance of PaymentRepository using MongoDB.
func NewMongoPaymentRepo() PaymentRepository {
	db := database.DB()
	repo := &MongoPaymentRepo{
		txnColl:     db.Collection("transactions"),
		accountColl: db.Collection("payment_accounts"),
		tipColl:     db.Collection("tips"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create payment indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoPaymentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	txnIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "booking_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "checkout_session_id", Value: 1}}},
		{Keys: bson.D{{Key: "mentee_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "mentor_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	if _, err := r.txnColl.Indexes().CreateMany(ctx, txnIndexes); err != nil {
		return fmt.Errorf("failed to create transaction indexes: %w", err)
	}

	accountIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.accountColl.Indexes().CreateMany(ctx, accountIndexes); err != nil {
		return fmt.Errorf("failed to create payment account indexes: %w", err)
	}

	tipIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "mentor_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	if _, err := r.tipColl.Indexes().CreateMany(ctx, tipIndexes); err != nil {
		return fmt.Errorf("failed to create tip indexes: %w", err)
	}
	return nil
}

func (r *MongoPaymentRepo) findTransaction(filter bson.M, opts ...*options.FindOneOptions) (*models.Transaction, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var txn models.Transaction
	if err := r.txnColl.FindOne(ctx, filter, opts...).Decode(&txn); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch transaction: %w", err)
	}
	return &txn, nil
}

// GetTransactionByID retrieves a transaction by ID.
func (r *MongoPaymentRepo) GetTransactionByID(id string) (*models.Transaction, error) {
	return r.findTransaction(bson.M{"id": id})
}

// GetTransactionByBookingID retrieves the latest transaction for a booking.
func (r *MongoPaymentRepo) GetTransactionByBookingID(bookingID string) (*models.Transaction, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.findTransaction(bson.M{"booking_id": bookingID}, opts)
}

// GetTransactionByCheckoutSession resolves a checkout session ID to its transaction.
func (r *MongoPaymentRepo) GetTransactionByCheckoutSession(checkoutSessionID string) (*models.Transaction, error) {
	return r.findTransaction(bson.M{"checkout_session_id": checkoutSessionID})
}

// GetTransactionByPaymentIntent resolves a payment intent ID to its transaction.
func (r *MongoPaymentRepo) GetTransactionByPaymentIntent(paymentIntentID string) (*models.Transaction, error) {
	return r.findTransaction(bson.M{"payment_intent_id": paymentIntentID})
}

// CreateTransaction inserts a new transaction document.
func (r *MongoPaymentRepo) CreateTransaction(txn *models.Transaction) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.txnColl.InsertOne(ctx, txn); err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// UpdateTransaction persists changes to an existing transaction.
func (r *MongoPaymentRepo) UpdateTransaction(txn *models.Transaction) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	txn.UpdatedAt = time.Now()
	result, err := r.txnColl.UpdateOne(ctx, bson.M{"id": txn.ID}, bson.M{"$set": txn})
	if err != nil {
		return fmt.Errorf("failed to update transaction with id %s: %w", txn.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("transaction with id %s not found", txn.ID)
	}
	return nil
}

// ListTransactionsByUser returns transactions where the user paid or was paid.
func (r *MongoPaymentRepo) ListTransactionsByUser(userID string) ([]models.Transaction, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	query := bson.M{"$or": bson.A{
		bson.M{"mentee_id": userID},
		bson.M{"mentor_id": userID},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.txnColl.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var txns []models.Transaction
	if err := cursor.All(ctx, &txns); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}
	return txns, nil
}

// GetAccountByUserID retrieves a mentor's payout account.
func (r *MongoPaymentRepo) GetAccountByUserID(userID string) (*models.PaymentAccount, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var account models.PaymentAccount
	if err := r.accountColl.FindOne(ctx, bson.M{"user_id": userID}).Decode(&account); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch payment account for user %s: %w", userID, err)
	}
	return &account, nil
}

// UpsertAccount creates or replaces a mentor's payout account.
func (r *MongoPaymentRepo) UpsertAccount(account *models.PaymentAccount) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	account.UpdatedAt = time.Now()
	opts := options.Replace().SetUpsert(true)
	if _, err := r.accountColl.ReplaceOne(ctx, bson.M{"user_id": account.UserID}, account, opts); err != nil {
		return fmt.Errorf("failed to upsert payment account for user %s: %w", account.UserID, err)
	}
	return nil
}

// CreateTip inserts a new tip document.
func (r *MongoPaymentRepo) CreateTip(tip *models.Tip) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.tipColl.InsertOne(ctx, tip); err != nil {
		return fmt.Errorf("failed to create tip: %w", err)
	}
	return nil
}

// ListTipsByMentor returns tips received by a mentor, newest first.
func (r *MongoPaymentRepo) ListTipsByMentor(mentorID string) ([]models.Tip, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.tipColl.Find(ctx, bson.M{"mentor_id": mentorID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list tips for mentor %s: %w", mentorID, err)
	}
	defer cursor.Close(ctx)

	var tips []models.Tip
	if err := cursor.All(ctx, &tips); err != nil {
		return nil, fmt.Errorf("failed to decode tips: %w", err)
	}
	return tips, nil
}
