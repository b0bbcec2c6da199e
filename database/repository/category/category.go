package categoryRepo

import "mentormatch/models"

// CategoryRepository defines methods for category data access.
type CategoryRepository interface {
	// List returns active categories ordered by display order. When parentID is
	// empty, only top-level categories are returned.
	List(parentID string) ([]models.Category, error)
	// GetBySlug retrieves a category by slug. Returns (nil, nil) when absent.
	GetBySlug(slug string) (*models.Category, error)
	// GetByID retrieves a category by ID. Returns (nil, nil) when absent.
	GetByID(id string) (*models.Category, error)
	// Create inserts a new category record.
	Create(category *models.Category) error
}
