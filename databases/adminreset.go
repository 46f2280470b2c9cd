package databases

// go generate: mockery --name AdminResetDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sunridge-rentals/rental-api/models"
)

const adminResetName = "adminPasswordResets"

// AdminResetDatabase contains the methods to use with the admin password reset database
type AdminResetDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.AdminPasswordReset, error)
	InsertOne(ctx context.Context, reset models.AdminPasswordReset, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error
}

type adminResetDatabase struct {
	db DatabaseHelper
}

// NewAdminResetDatabase initializes a new instance of the reset token database with the provided db connection
func NewAdminResetDatabase(db DatabaseHelper) AdminResetDatabase {
	return &adminResetDatabase{
		db: db,
	}
}

func (c *adminResetDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.AdminPasswordReset, error) {
	reset := &models.AdminPasswordReset{}
	err := c.db.Collection(adminResetName).FindOne(ctx, filter, opts...).Decode(reset)
	if err != nil {
		return nil, err
	}
	return reset, nil
}

func (c *adminResetDatabase) InsertOne(ctx context.Context, reset models.AdminPasswordReset, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return c.db.Collection(adminResetName).InsertOne(ctx, reset, opts...)
}

func (c *adminResetDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := c.db.Collection(adminResetName).UpdateOne(ctx, filter, update, opts...)
	return err
}
