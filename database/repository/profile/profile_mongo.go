package profileRepo

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

// MongoProfileRepo implements ProfileRepository using MongoDB.
type MongoProfileRepo struct {
	coll      *mongo.Collection
	likeColl  *mongo.Collection
	saveColl  *mongo.Collection
	availColl *mongo.Collection
}

// NewMongoProfileRepo creates a new instance of ProfileRepository using MongoDB.
func NewMongoProfileRepo() ProfileRepository {
	db := database.DB()
	repo := &MongoProfileRepo{
		coll:      db.Collection("profiles"),
		likeColl:  db.Collection("mentor_likes"),
		saveColl:  db.Collection("mentor_saves"),
		availColl: db.Collection("availability"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create profile indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoProfileRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	profileIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "is_mentor", Value: 1}, {Key: "is_verified", Value: 1}}},
		{Keys: bson.D{{Key: "categories.category_id", Value: 1}}},
		{Keys: bson.D{{Key: "rating_average", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, profileIdx); err != nil {
		return fmt.Errorf("failed to create profile indexes: %w", err)
	}

	pairIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "mentee_id", Value: 1}, {Key: "mentor_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.likeColl.Indexes().CreateMany(ctx, pairIdx); err != nil {
		return fmt.Errorf("failed to create like indexes: %w", err)
	}
	if _, err := r.saveColl.Indexes().CreateMany(ctx, pairIdx); err != nil {
		return fmt.Errorf("failed to create save indexes: %w", err)
	}

	availIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "mentor_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.availColl.Indexes().CreateMany(ctx, availIdx); err != nil {
		return fmt.Errorf("failed to create availability indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a profile by its unique ID.
func (r *MongoProfileRepo) GetByID(id string) (*models.Profile, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var profile models.Profile
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&profile); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch profile with id %s: %w", id, err)
	}
	return &profile, nil
}

// GetByUserID retrieves the profile belonging to a user.
func (r *MongoProfileRepo) GetByUserID(userID string) (*models.Profile, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var profile models.Profile
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&profile); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch profile for user %s: %w", userID, err)
	}
	return &profile, nil
}

// Create inserts a new profile document.
func (r *MongoProfileRepo) Create(profile *models.Profile) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, profile); err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// Update modifies an existing profile document.
func (r *MongoProfileRepo) Update(profile *models.Profile) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	profile.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": profile.ID}, bson.M{"$set": profile})
	if err != nil {
		return fmt.Errorf("failed to update profile with id %s: %w", profile.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("profile with id %s not found", profile.ID)
	}
	return nil
}

// UpdateSetDocument applies a partial $set update by ID.
func (r *MongoProfileRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	updateDoc["updated_at"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": updateDoc})
	if err != nil {
		return fmt.Errorf("failed to update profile with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("profile with id %s not found", id)
	}
	return nil
}

// SearchMentors returns active mentors matching the filter plus the total count.
func (r *MongoProfileRepo) SearchMentors(filter MentorSearchFilter) ([]models.Profile, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	query := bson.M{
		"is_mentor":      true,
		"rate.is_active": true,
	}
	if filter.CategoryID != "" {
		query["categories.category_id"] = filter.CategoryID
	}
	if filter.Query != "" {
		pattern := bson.M{"$regex": filter.Query, "$options": "i"}
		query["$or"] = bson.A{
			bson.M{"display_name": pattern},
			bson.M{"bio": pattern},
			bson.M{"rate.headline": pattern},
		}
	}
	if filter.MinPriceCents > 0 || filter.MaxPriceCents > 0 {
		price := bson.M{}
		if filter.MinPriceCents > 0 {
			price["$gte"] = filter.MinPriceCents
		}
		if filter.MaxPriceCents > 0 {
			price["$lte"] = filter.MaxPriceCents
		}
		query["rate.hourly_rate_cents"] = price
	}
	if filter.MinRating > 0 {
		query["rating_average"] = bson.M{"$gte": filter.MinRating}
	}
	if filter.VerifiedOnly {
		query["is_verified"] = true
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count mentors: %w", err)
	}

	var sort bson.D
	switch filter.Sort {
	case "price_asc":
		sort = bson.D{{Key: "rate.hourly_rate_cents", Value: 1}}
	case "price_desc":
		sort = bson.D{{Key: "rate.hourly_rate_cents", Value: -1}}
	case "recent":
		sort = bson.D{{Key: "created_at", Value: -1}}
	default:
		sort = bson.D{{Key: "rating_average", Value: -1}, {Key: "rating_count", Value: -1}}
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	opts := options.Find().
		SetSort(sort).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search mentors: %w", err)
	}
	defer cursor.Close(ctx)

	var mentors []models.Profile
	if err := cursor.All(ctx, &mentors); err != nil {
		return nil, 0, fmt.Errorf("failed to decode mentors: %w", err)
	}
	return mentors, total, nil
}

// ListMentorsByCategory returns active mentors linked to a category.
func (r *MongoProfileRepo) ListMentorsByCategory(categoryID string, limit int) ([]models.Profile, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	if limit <= 0 {
		limit = 50
	}
	query := bson.M{
		"is_mentor":              true,
		"rate.is_active":         true,
		"categories.category_id": categoryID,
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "rating_average", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list mentors for category %s: %w", categoryID, err)
	}
	defer cursor.Close(ctx)

	var mentors []models.Profile
	if err := cursor.All(ctx, &mentors); err != nil {
		return nil, fmt.Errorf("failed to decode mentors: %w", err)
	}
	return mentors, nil
}
