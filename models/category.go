// models/category.go
package models

// Category is a browsable mentoring topic. Categories form a shallow tree
// through ParentID.
type Category struct {
	ID           string `bson:"id" json:"id"`
	Name         string `bson:"name" json:"name"`
	Slug         string `bson:"slug" json:"slug"`
	Description  string `bson:"description,omitempty" json:"description,omitempty"`
	Icon         string `bson:"icon,omitempty" json:"icon,omitempty"`
	ParentID     string `bson:"parent_id,omitempty" json:"parent_id,omitempty"`
	IsActive     bool   `bson:"is_active" json:"is_active"`
	DisplayOrder int    `bson:"display_order" json:"display_order"`
	MentorCount  int    `bson:"mentor_count" json:"mentor_count"`
}
