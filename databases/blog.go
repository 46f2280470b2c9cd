package databases

// go generate: mockery --name BlogDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sunridge-rentals/rental-api/models"
)

const blogName = "blogs"

// BlogDatabase contains the methods to use with the blog database
type BlogDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Blog, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Blog, error)
	InsertOne(ctx context.Context, blog models.Blog, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
	FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts ...*options.FindOneAndUpdateOptions) (*models.Blog, error)
	TotalViews(ctx context.Context) (int64, error)
}

type blogDatabase struct {
	db DatabaseHelper
}

// NewBlogDatabase initializes a new instance of blog database with the provided db connection
func NewBlogDatabase(db DatabaseHelper) BlogDatabase {
	return &blogDatabase{
		db: db,
	}
}

func (c *blogDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Blog, error) {
	blog := &models.Blog{}
	err := c.db.Collection(blogName).FindOne(ctx, filter, opts...).Decode(blog)
	if err != nil {
		return nil, err
	}
	return blog, nil
}

func (c *blogDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Blog, error) {
	var blogs []models.Blog
	cr, err := c.db.Collection(blogName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cr.Decode(&blogs)
	if err != nil {
		return nil, err
	}
	return blogs, nil
}

func (c *blogDatabase) InsertOne(ctx context.Context, blog models.Blog, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return c.db.Collection(blogName).InsertOne(ctx, blog, opts...)
}

func (c *blogDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := c.db.Collection(blogName).UpdateOne(ctx, filter, update, opts...)
	return err
}

func (c *blogDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return c.db.Collection(blogName).DeleteOne(ctx, filter, opts...)
}

func (c *blogDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return c.db.Collection(blogName).CountDocuments(ctx, filter, opts...)
}

func (c *blogDatabase) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts ...*options.FindOneAndUpdateOptions) (*models.Blog, error) {
	blog := &models.Blog{}
	err := c.db.Collection(blogName).FindOneAndUpdate(ctx, filter, update, opts...).Decode(blog)
	if err != nil {
		return nil, err
	}
	return blog, nil
}

// TotalViews sums the view counters across every post.
func (c *blogDatabase) TotalViews(ctx context.Context) (int64, error) {
	pipeline := []map[string]interface{}{
		{"$group": map[string]interface{}{
			"_id":   nil,
			"total": map[string]interface{}{"$sum": "$views"},
		}},
	}
	cr, err := c.db.Collection(blogName).Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}

	var rows []struct {
		Total int64 `bson:"total"`
	}
	if err := cr.Decode(&rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}
