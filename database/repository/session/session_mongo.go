package sessionRepo

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

// MongoSessionRepo implements SessionRepository using MongoDB.
type MongoSessionRepo struct {
	coll *mongo.Collection
}

// NewMongoSessionRepo creates a new instance of SessionRepository using MongoDB.
func NewMongoSessionRepo() SessionRepository {
	coll := database.DB().Collection("sessions")
	repo := &MongoSessionRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create session indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoSessionRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "booking_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "mentor_id", Value: 1}, {Key: "started_at", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a session by ID.
func (r *MongoSessionRepo) GetByID(id string) (*models.Session, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var session models.Session
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&session); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch session with id %s: %w", id, err)
	}
	return &session, nil
}

// GetByBookingID retrieves the session attached to a booking.
func (r *MongoSessionRepo) GetByBookingID(bookingID string) (*models.Session, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var session models.Session
	if err := r.coll.FindOne(ctx, bson.M{"booking_id": bookingID}).Decode(&session); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch session for booking %s: %w", bookingID, err)
	}
	return &session, nil
}

// Create inserts a new session document.
func (r *MongoSessionRepo) Create(session *models.Session) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, session); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// Update persists changes to an existing session.
func (r *MongoSessionRepo) Update(session *models.Session) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": session.ID}, bson.M{"$set": session})
	if err != nil {
		return fmt.Errorf("failed to update session with id %s: %w", session.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("session with id %s not found", session.ID)
	}
	return nil
}

// ListByUser returns sessions where the user is mentor or mentee, newest first.
func (r *MongoSessionRepo) ListByUser(userID string) ([]models.Session, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	query := bson.M{"$or": bson.A{
		bson.M{"mentor_id": userID},
		bson.M{"mentee_id": userID},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "started_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var sessions []models.Session
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("failed to decode sessions: %w", err)
	}
	return sessions, nil
}
