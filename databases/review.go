package databases

// go generate: mockery --name ReviewDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sunridge-rentals/rental-api/models"
)

const reviewName = "reviews"

// ReviewDatabase contains the methods to use with the review database
type ReviewDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Review, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Review, error)
	InsertOne(ctx context.Context, review models.Review, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
}

type reviewDatabase struct {
	db DatabaseHelper
}

// NewReviewDatabase initializes a new instance of review database with the provided db connection
func NewReviewDatabase(db DatabaseHelper) ReviewDatabase {
	return &reviewDatabase{
		db: db,
	}
}

func (c *reviewDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Review, error) {
	review := &models.Review{}
	err := c.db.Collection(reviewName).FindOne(ctx, filter, opts...).Decode(review)
	if err != nil {
		return nil, err
	}
	return review, nil
}

func (c *reviewDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Review, error) {
	var reviews []models.Review
	cr, err := c.db.Collection(reviewName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cr.Decode(&reviews)
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (c *reviewDatabase) InsertOne(ctx context.Context, review models.Review, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return c.db.Collection(reviewName).InsertOne(ctx, review, opts...)
}

func (c *reviewDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := c.db.Collection(reviewName).UpdateOne(ctx, filter, update, opts...)
	return err
}

func (c *reviewDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return c.db.Collection(reviewName).DeleteOne(ctx, filter, opts...)
}

func (c *reviewDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return c.db.Collection(reviewName).CountDocuments(ctx, filter, opts...)
}
