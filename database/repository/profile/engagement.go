package profileRepo

import (
	"fmt"
	"time"

	"mentormatch/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Like records one-way interest; inserting twice is a no-op.
func (r *MongoProfileRepo) Like(menteeID, mentorID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	like := models.MentorLike{MenteeID: menteeID, MentorID: mentorID, CreatedAt: time.Now()}
	if _, err := r.likeColl.InsertOne(ctx, like); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("failed to record like: %w", err)
	}
	return nil
}

// HasLiked reports whether the mentee already liked the mentor.
func (r *MongoProfileRepo) HasLiked(menteeID, mentorID string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.likeColl.CountDocuments(ctx, bson.M{"mentee_id": menteeID, "mentor_id": mentorID})
	if err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}
	return count > 0, nil
}

// Save bookmarks a mentor; inserting twice is a no-op.
func (r *MongoProfileRepo) Save(menteeID, mentorID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	save := models.MentorSave{MenteeID: menteeID, MentorID: mentorID, CreatedAt: time.Now()}
	if _, err := r.saveColl.InsertOne(ctx, save); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("failed to record save: %w", err)
	}
	return nil
}

// Unsave removes a bookmark.
func (r *MongoProfileRepo) Unsave(menteeID, mentorID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.saveColl.DeleteOne(ctx, bson.M{"mentee_id": menteeID, "mentor_id": mentorID}); err != nil {
		return fmt.Errorf("failed to remove save: %w", err)
	}
	return nil
}

// ListSaved returns the mentor profiles a mentee has bookmarked, most recent first.
func (r *MongoProfileRepo) ListSaved(menteeID string) ([]models.Profile, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.saveColl.Find(ctx, bson.M{"mentee_id": menteeID})
	if err != nil {
		return nil, fmt.Errorf("failed to list saves: %w", err)
	}
	defer cursor.Close(ctx)

	var saves []models.MentorSave
	if err := cursor.All(ctx, &saves); err != nil {
		return nil, fmt.Errorf("failed to decode saves: %w", err)
	}
	if len(saves) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(saves))
	for _, s := range saves {
		ids = append(ids, s.MentorID)
	}

	profCursor, err := r.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch saved mentors: %w", err)
	}
	defer profCursor.Close(ctx)

	var mentors []models.Profile
	if err := profCursor.All(ctx, &mentors); err != nil {
		return nil, fmt.Errorf("failed to decode saved mentors: %w", err)
	}
	return mentors, nil
}

// LikedCategoryIDs returns the category IDs of mentors the mentee liked.
func (r *MongoProfileRepo) LikedCategoryIDs(menteeID string) ([]string, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.likeColl.Find(ctx, bson.M{"mentee_id": menteeID})
	if err != nil {
		return nil, fmt.Errorf("failed to list likes: %w", err)
	}
	defer cursor.Close(ctx)

	var likes []models.MentorLike
	if err := cursor.All(ctx, &likes); err != nil {
		return nil, fmt.Errorf("failed to decode likes: %w", err)
	}
	if len(likes) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(likes))
	for _, l := range likes {
		ids = append(ids, l.MentorID)
	}

	profCursor, err := r.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch liked mentors: %w", err)
	}
	defer profCursor.Close(ctx)

	var mentors []models.Profile
	if err := profCursor.All(ctx, &mentors); err != nil {
		return nil, fmt.Errorf("failed to decode liked mentors: %w", err)
	}

	seen := make(map[string]bool)
	var categoryIDs []string
	for _, m := range mentors {
		for _, c := range m.Categories {
			if !seen[c.CategoryID] {
				seen[c.CategoryID] = true
				categoryIDs = append(categoryIDs, c.CategoryID)
			}
		}
	}
	return categoryIDs, nil
}
