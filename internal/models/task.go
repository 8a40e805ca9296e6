package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task represents a single logged work item
type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Date        time.Time          `bson:"date" json:"date"`
	Company     string             `bson:"company" json:"company"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// Categories is the closed set of accepted task categories. The same set is
// enforced by the collection schema in MongoDB, so a write that bypasses the
// request validation layer is still rejected by the store.
var Categories = []string{
	"Meeting",
	"Coding",
	"Research",
	"Documentation",
	"Planning",
	"Other",
}

// IsValidCategory reports whether c is a member of the accepted category set
func IsValidCategory(c string) bool {
	for _, cat := range Categories {
		if c == cat {
			return true
		}
	}
	return false
}
