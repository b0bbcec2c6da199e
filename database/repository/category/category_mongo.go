package categoryRepo

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

// MongoCategoryRepo implements CategoryRepository using MongoDB.
type MongoCategoryRepo struct {
	coll *mongo.Collection
}

// NewMongoCategoryRepo creates a new instance of CategoryRepository using MongoDB.
func NewMongoCategoryRepo() CategoryRepository {
	coll := database.DB().Collection("categories")
	repo := &MongoCategoryRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create category indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoCategoryRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "parent_id", Value: 1}, {Key: "display_order", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// List returns active categories ordered by display order.
func (r *MongoCategoryRepo) List(parentID string) ([]models.Category, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	query := bson.M{"is_active": true}
	if parentID == "" {
		query["$or"] = bson.A{
			bson.M{"parent_id": ""},
			bson.M{"parent_id": bson.M{"$exists": false}},
		}
	} else {
		query["parent_id"] = parentID
	}

	opts := options.Find().SetSort(bson.D{{Key: "display_order", Value: 1}, {Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer cursor.Close(ctx)

	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return categories, nil
}

// GetBySlug retrieves a category by slug.
func (r *MongoCategoryRepo) GetBySlug(slug string) (*models.Category, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var category models.Category
	if err := r.coll.FindOne(ctx, bson.M{"slug": slug}).Decode(&category); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch category with slug %s: %w", slug, err)
	}
	return &category, nil
}

// GetByID retrieves a category by ID.
func (r *MongoCategoryRepo) GetByID(id string) (*models.Category, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var category models.Category
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&category); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch category with id %s: %w", id, err)
	}
	return &category, nil
}

// Create inserts a new category document.
func (r *MongoCategoryRepo) Create(category *models.Category) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, category); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}
