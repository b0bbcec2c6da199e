package profileRepo

import (
	"fmt"
	"time"

	"mentormatch/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// availabilityDoc bundles a mentor's weekly rules and overrides into one
// document so replacement stays a single write.
type availabilityDoc struct {
	MentorID  string                        `bson:"mentor_id"`
	Rules     []models.AvailabilityRule     `bson:"rules"`
	Overrides []models.AvailabilityOverride `bson:"overrides"`
	UpdatedAt time.Time                     `bson:"updated_at"`
}

// ReplaceAvailability swaps a mentor's weekly rules and date overrides.
func (r *MongoProfileRepo) ReplaceAvailability(mentorID string, rules []models.AvailabilityRule, overrides []models.AvailabilityOverride) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	doc := availabilityDoc{
		MentorID:  mentorID,
		Rules:     rules,
		Overrides: overrides,
		UpdatedAt: time.Now(),
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.availColl.ReplaceOne(ctx, bson.M{"mentor_id": mentorID}, doc, opts); err != nil {
		return fmt.Errorf("failed to replace availability for mentor %s: %w", mentorID, err)
	}
	return nil
}

// GetAvailability returns a mentor's weekly rules and date overrides.
func (r *MongoProfileRepo) GetAvailability(mentorID string) ([]models.AvailabilityRule, []models.AvailabilityOverride, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var doc availabilityDoc
	if err := r.availColl.FindOne(ctx, bson.M{"mentor_id": mentorID}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to fetch availability for mentor %s: %w", mentorID, err)
	}
	return doc.Rules, doc.Overrides, nil
}
