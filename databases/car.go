package databases

// go generate: mockery --name CarDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sunridge-rentals/rental-api/models"
)

const carName = "cars"

// CarDatabase contains the methods to use with the car database
type CarDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Car, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Car, error)
	InsertOne(ctx context.Context, car models.Car, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error
	UpdateMany(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (int64, error)
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
	CountByCategory(ctx context.Context) (map[string]int64, error)
}

type carDatabase struct {
	db DatabaseHelper
}

// NewCarDatabase initializes a new instance of car database with the provided db connection
func NewCarDatabase(db DatabaseHelper) CarDatabase {
	return &carDatabase{
		db: db,
	}
}

func (c *carDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Car, error) {
	car := &models.Car{}
	err := c.db.Collection(carName).FindOne(ctx, filter, opts...).Decode(car)
	if err != nil {
		return nil, err
	}
	return car, nil
}

func (c *carDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Car, error) {
	var cars []models.Car
	cr, err := c.db.Collection(carName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cr.Decode(&cars)
	if err != nil {
		return nil, err
	}
	return cars, nil
}

func (c *carDatabase) InsertOne(ctx context.Context, car models.Car, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return c.db.Collection(carName).InsertOne(ctx, car, opts...)
}

func (c *carDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := c.db.Collection(carName).UpdateOne(ctx, filter, update, opts...)
	return err
}

func (c *carDatabase) UpdateMany(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (int64, error) {
	res, err := c.db.Collection(carName).UpdateMany(ctx, filter, update, opts...)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (c *carDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return c.db.Collection(carName).DeleteOne(ctx, filter, opts...)
}

func (c *carDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return c.db.Collection(carName).CountDocuments(ctx, filter, opts...)
}

// CountByCategory groups the fleet by category slug and returns the number of
// cars in each group.
func (c *carDatabase) CountByCategory(ctx context.Context) (map[string]int64, error) {
	pipeline := []map[string]interface{}{
		{"$group": map[string]interface{}{
			"_id":   "$categoryName",
			"count": map[string]interface{}{"$sum": 1},
		}},
	}
	cr, err := c.db.Collection(carName).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	var rows []struct {
		ID    string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cr.Decode(&rows); err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.ID] = row.Count
	}
	return counts, nil
}
