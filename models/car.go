package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Car holds the structure for the cars collection in mongo
type Car struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Slug          string             `bson:"slug" json:"slug"`
	CategoryID    primitive.ObjectID `bson:"categoryId" json:"categoryId"`
	CategoryName  string             `bson:"categoryName" json:"categoryName"`
	PricePerDay   float64            `bson:"pricePerDay" json:"pricePerDay"`
	TieredPricing map[string]float64 `bson:"tieredPricing,omitempty" json:"tieredPricing,omitempty"`
	Specs         CarSpecs           `bson:"specs" json:"specs"`
	Features      []string           `bson:"features" json:"features"`
	Image         string             `bson:"image" json:"image"`
	Rating        float64            `bson:"rating" json:"rating"`
	IsFeatured    bool               `bson:"isFeatured" json:"isFeatured"`
	IsAvailable   bool               `bson:"isAvailable" json:"isAvailable"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CarSpecs holds the technical details shown on a fleet card
type CarSpecs struct {
	Seats        int    `bson:"seats" json:"seats"`
	Doors        int    `bson:"doors" json:"doors"`
	Transmission string `bson:"transmission" json:"transmission"`
	FuelType     string `bson:"fuelType" json:"fuelType"`
	Luggage      int    `bson:"luggage" json:"luggage"`
}
