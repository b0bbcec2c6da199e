package bookingRepo

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

// activeStatuses are the booking statuses that count toward slot conflicts.
var activeStatuses = []string{models.BookingStatusPending, models.BookingStatusConfirmed}

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	coll := database.DB().Collection("bookings")
	repo := &MongoBookingRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create booking indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "mentor_id", Value: 1}, {Key: "status", Value: 1}, {Key: "scheduled_at", Value: 1}}},
		{Keys: bson.D{{Key: "mentee_id", Value: 1}, {Key: "scheduled_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "ends_at", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// overlapFilter matches active bookings of the mentor whose half-open window
// intersects [start, end): existing.start < end AND existing.end > start.
func overlapFilter(mentorID string, start, end time.Time) bson.M {
	return bson.M{
		"mentor_id":    mentorID,
		"status":       bson.M{"$in": activeStatuses},
		"scheduled_at": bson.M{"$lt": end},
		"ends_at":      bson.M{"$gt": start},
	}
}

// GetByID retrieves a booking by ID.
func (r *MongoBookingRepo) GetByID(id string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &booking, nil
}

// ListByUser returns bookings where the user is mentor and/or mentee,
// most recent first.
func (r *MongoBookingRepo) ListByUser(userID string, filter ListFilter) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	var query bson.M
	switch filter.Role {
	case "mentor":
		query = bson.M{"mentor_id": userID}
	case "mentee":
		query = bson.M{"mentee_id": userID}
	default:
		query = bson.M{"$or": bson.A{
			bson.M{"mentor_id": userID},
			bson.M{"mentee_id": userID},
		}}
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.UpcomingOnly {
		query["scheduled_at"] = bson.M{"$gt": time.Now()}
	}

	opts := options.Find().SetSort(bson.D{{Key: "scheduled_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// FindOverlapping returns the mentor's active bookings intersecting [start, end).
func (r *MongoBookingRepo) FindOverlapping(ctx context.Context, mentorID string, start, end time.Time) ([]models.Booking, error) {
	cursor, err := r.coll.Find(ctx, overlapFilter(mentorID, start, end))
	if err != nil {
		return nil, fmt.Errorf("failed to query overlapping bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode overlapping bookings: %w", err)
	}
	return bookings, nil
}

// Update persists state changes that do not move the window.
func (r *MongoBookingRepo) Update(booking *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	booking.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": booking.ID}, bson.M{"$set": booking})
	if err != nil {
		return fmt.Errorf("failed to update booking with id %s: %w", booking.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking with id %s not found", booking.ID)
	}
	return nil
}

// ListConfirmedEndedBefore returns confirmed bookings whose window ended
// before the cutoff.
func (r *MongoBookingRepo) ListConfirmedEndedBefore(cutoff time.Time) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	query := bson.M{
		"status":  models.BookingStatusConfirmed,
		"ends_at": bson.M{"$lt": cutoff},
	}
	cursor, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list ended bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode ended bookings: %w", err)
	}
	return bookings, nil
}
