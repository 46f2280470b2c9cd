package databases

// go generate: mockery --name CategoryDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sunridge-rentals/rental-api/models"
)

const categoryName = "categories"

// CategoryDatabase contains the methods to use with the category database
type CategoryDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Category, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Category, error)
	InsertOne(ctx context.Context, category models.Category, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
}

type categoryDatabase struct {
	db DatabaseHelper
}

// NewCategoryDatabase initializes a new instance of category database with the provided db connection
func NewCategoryDatabase(db DatabaseHelper) CategoryDatabase {
	return &categoryDatabase{
		db: db,
	}
}

func (c *categoryDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Category, error) {
	category := &models.Category{}
	err := c.db.Collection(categoryName).FindOne(ctx, filter, opts...).Decode(category)
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (c *categoryDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Category, error) {
	var categories []models.Category
	cr, err := c.db.Collection(categoryName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cr.Decode(&categories)
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *categoryDatabase) InsertOne(ctx context.Context, category models.Category, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return c.db.Collection(categoryName).InsertOne(ctx, category, opts...)
}

func (c *categoryDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := c.db.Collection(categoryName).UpdateOne(ctx, filter, update, opts...)
	return err
}

func (c *categoryDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return c.db.Collection(categoryName).DeleteOne(ctx, filter, opts...)
}

func (c *categoryDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return c.db.Collection(categoryName).CountDocuments(ctx, filter, opts...)
}
