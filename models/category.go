package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category holds the structure for the categories collection in mongo.
// The slug is derived from the name at write time and must stay unique.
type Category struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Slug        string             `bson:"slug" json:"slug"`
	Description string             `bson:"description" json:"description"`
	Icon        string             `bson:"icon" json:"icon"`
	Features    []string           `bson:"features" json:"features"`
	PriceFrom   float64            `bson:"priceFrom" json:"priceFrom"`
	Image       string             `bson:"image" json:"image"`
	Order       int                `bson:"order" json:"order"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
