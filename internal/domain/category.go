package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is a simple lookup entity referenced by exercises.
type Category struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Color       string             `bson:"color,omitempty" json:"color,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

func (c *Category) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if trimmed(c.Name) == "" {
		errs["name"] = "name is required"
	}
	return errs
}
