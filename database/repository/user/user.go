package userRepo

import (
	"mentormatch/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID. Returns (nil, nil) when absent.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address. Returns (nil, nil) when absent.
	GetByEmail(email string) (*models.User, error)
	// Create inserts a new user record.
	Create(user *models.User) error
	// Update modifies an existing user record.
	Update(user *models.User) error
	// UpdateSetDocument applies a partial $set update by ID.
	UpdateSetDocument(id string, updateDoc bson.M) error
	// AddDeviceToken registers an FCM device token; duplicates are ignored.
	AddDeviceToken(id, deviceToken string) error
	// Delete removes a user record by its ID.
	Delete(id string) error
}
