package databases

// go generate: mockery --name FAQDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sunridge-rentals/rental-api/models"
)

const faqName = "faqs"

// FAQDatabase contains the methods to use with the faq database
type FAQDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.FAQ, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.FAQ, error)
	InsertOne(ctx context.Context, faq models.FAQ, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
}

type faqDatabase struct {
	db DatabaseHelper
}

// NewFAQDatabase initializes a new instance of faq database with the provided db connection
func NewFAQDatabase(db DatabaseHelper) FAQDatabase {
	return &faqDatabase{
		db: db,
	}
}

func (c *faqDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.FAQ, error) {
	faq := &models.FAQ{}
	err := c.db.Collection(faqName).FindOne(ctx, filter, opts...).Decode(faq)
	if err != nil {
		return nil, err
	}
	return faq, nil
}

func (c *faqDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.FAQ, error) {
	var faqs []models.FAQ
	cr, err := c.db.Collection(faqName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cr.Decode(&faqs)
	if err != nil {
		return nil, err
	}
	return faqs, nil
}

func (c *faqDatabase) InsertOne(ctx context.Context, faq models.FAQ, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return c.db.Collection(faqName).InsertOne(ctx, faq, opts...)
}

func (c *faqDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := c.db.Collection(faqName).UpdateOne(ctx, filter, update, opts...)
	return err
}

func (c *faqDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return c.db.Collection(faqName).DeleteOne(ctx, filter, opts...)
}

func (c *faqDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return c.db.Collection(faqName).CountDocuments(ctx, filter, opts...)
}
