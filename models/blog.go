package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blog holds the structure for the blogs collection in mongo.
// Content is stored as sanitized HTML; views is incremented on every
// public read of the post by slug.
type Blog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Slug      string             `bson:"slug" json:"slug"`
	Excerpt   string             `bson:"excerpt" json:"excerpt"`
	Content   string             `bson:"content" json:"content"`
	Category  string             `bson:"category" json:"category"`
	Author    string             `bson:"author" json:"author"`
	Date      string             `bson:"date" json:"date"`
	ReadTime  string             `bson:"readTime" json:"readTime"`
	Featured  bool               `bson:"featured" json:"featured"`
	Published bool               `bson:"published" json:"published"`
	Views     int64              `bson:"views" json:"views"`
	Keywords  []string           `bson:"keywords" json:"keywords"`
	Tags      []string           `bson:"tags" json:"tags"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
