package reviewRepo

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

// MongoReviewRepo implements ReviewRepository using MongoDB.
type MongoReviewRepo struct {
	coll *mongo.Collection
}

// NewMongoReviewRepo creates a new instance of ReviewRepository using MongoDB.
func NewMongoReviewRepo() ReviewRepository {
	coll := database.DB().Collection("reviews")
	repo := &MongoReviewRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create review indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoReviewRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "booking_id", Value: 1}, {Key: "reviewer_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "mentor_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a review by ID.
func (r *MongoReviewRepo) GetByID(id string) (*models.Review, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var review models.Review
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&review); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch review with id %s: %w", id, err)
	}
	return &review, nil
}

// GetByBookingAndReviewer retrieves a reviewer's review for a booking.
func (r *MongoReviewRepo) GetByBookingAndReviewer(bookingID, reviewerID string) (*models.Review, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var review models.Review
	filter := bson.M{"booking_id": bookingID, "reviewer_id": reviewerID}
	if err := r.coll.FindOne(ctx, filter).Decode(&review); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch review for booking %s: %w", bookingID, err)
	}
	return &review, nil
}

// GetBySessionID retrieves the review of a session.
func (r *MongoReviewRepo) GetBySessionID(sessionID string) (*models.Review, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var review models.Review
	if err := r.coll.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&review); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch review for session %s: %w", sessionID, err)
	}
	return &review, nil
}

// Create inserts a new review document.
func (r *MongoReviewRepo) Create(review *models.Review) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, review); err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// Delete removes a review document by ID.
func (r *MongoReviewRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"id": id}); err != nil {
		return fmt.Errorf("failed to delete review %s: %w", id, err)
	}
	return nil
}

// ListByMentor returns public reviews for a mentor, newest first.
func (r *MongoReviewRepo) ListByMentor(mentorID string, limit int) ([]models.Review, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	if limit <= 0 {
		limit = 20
	}
	query := bson.M{"mentor_id": mentorID, "is_public": true}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews for mentor %s: %w", mentorID, err)
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

// StatsByMentor aggregates rating counts per star for a mentor's public
// reviews and derives the average from them.
func (r *MongoReviewRepo) StatsByMentor(mentorID string) (float64, int, map[int]int, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"mentor_id": mentorID, "is_public": true}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$rating",
			"count": bson.M{"$sum": 1},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("failed to aggregate review stats for mentor %s: %w", mentorID, err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Rating int `bson:"_id"`
		Count  int `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, 0, nil, fmt.Errorf("failed to decode review stats: %w", err)
	}

	distribution := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	total := 0
	sum := 0
	for _, row := range rows {
		distribution[row.Rating] = row.Count
		total += row.Count
		sum += row.Rating * row.Count
	}
	if total == 0 {
		return 0, 0, distribution, nil
	}
	return float64(sum) / float64(total), total, distribution, nil
}
