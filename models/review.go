package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review holds the structure for the reviews collection in mongo
type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Location  string             `bson:"location" json:"location"`
	Rating    int                `bson:"rating" json:"rating"`
	Date      string             `bson:"date" json:"date"`
	Vehicle   string             `bson:"vehicle" json:"vehicle"`
	Review    string             `bson:"review" json:"review"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	Verified  bool               `bson:"verified" json:"verified"`
	Category  string             `bson:"category" json:"category"`
	IsActive  bool               `bson:"isActive" json:"isActive"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ReviewStats are computed in the handler over the filtered active set
type ReviewStats struct {
	Average   float64        `json:"average"`
	Total     int            `json:"total"`
	Histogram map[string]int `json:"histogram"`
}
