package databases_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sunridge-rentals/rental-api/config"
	"github.com/sunridge-rentals/rental-api/databases"
	"github.com/sunridge-rentals/rental-api/databases/mocks"
	"github.com/sunridge-rentals/rental-api/models"
)

func TestNewCarDatabase(t *testing.T) {
	os.Setenv("DB_URI", "mongodb://127.0.0.1:27017")
	os.Setenv("DB_NAME", "test")
	conf := config.New()

	dbClient, err := databases.NewClient(conf)
	assert.NoError(t, err)

	db := databases.NewDatabase(conf, dbClient)

	carDB := databases.NewCarDatabase(db)

	assert.NotEmpty(t, carDB)
}

func TestCarDatabase_FindOne(t *testing.T) {

	// define variables for interfaces
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var srHelperErr databases.SingleResultHelper
	var srHelperCorrect databases.SingleResultHelper

	// set interfaces implementation to mocked structures
	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	srHelperErr = &mocks.SingleResultHelper{}
	srHelperCorrect = &mocks.SingleResultHelper{}

	srHelperErr.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(errors.New("mocked-error"))

	srHelperCorrect.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*models.Car)
		arg.Name = "mocked-car"
	})

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"error": true}).
		Return(srHelperErr)

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"error": false}).
		Return(srHelperCorrect)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "cars").Return(collectionHelper)

	// Create new database with mocked Database interface
	carDba := databases.NewCarDatabase(dbHelper)

	// Call method with defined filter, that in our mocked function returns
	// mocked-error
	car, err := carDba.FindOne(context.Background(), bson.M{"error": true})

	assert.Empty(t, car)
	assert.EqualError(t, err, "mocked-error")

	// Now call the same function with different filter for the correct result
	car, err = carDba.FindOne(context.Background(), bson.M{"error": false})

	assert.Equal(t, &models.Car{Name: "mocked-car"}, car)
	assert.NoError(t, err)
}

func TestCarDatabase_UpdateMany(t *testing.T) {
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}

	collectionHelper.(*mocks.CollectionHelper).
		On("UpdateMany", context.Background(), bson.M{"error": true}, mock.Anything).
		Return(nil, errors.New("mocked-error"))

	collectionHelper.(*mocks.CollectionHelper).
		On("UpdateMany", context.Background(), bson.M{"error": false}, mock.Anything).
		Return(&mongo.UpdateResult{ModifiedCount: 7}, nil)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "cars").Return(collectionHelper)

	carDba := databases.NewCarDatabase(dbHelper)

	modified, err := carDba.UpdateMany(context.Background(), bson.M{"error": true}, bson.M{"$set": bson.M{"categoryName": "SUV"}})

	assert.Zero(t, modified)
	assert.EqualError(t, err, "mocked-error")

	modified, err = carDba.UpdateMany(context.Background(), bson.M{"error": false}, bson.M{"$set": bson.M{"categoryName": "SUV"}})

	assert.Equal(t, int64(7), modified)
	assert.NoError(t, err)
}

func TestCarDatabase_CountByCategory(t *testing.T) {
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var cursorHelper databases.CursorHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	cursorHelper = &mocks.CursorHelper{}

	cursorHelper.(*mocks.CursorHelper).
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		})
		*arg = []struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		}{
			{ID: "Economy", Count: 5},
			{ID: "SUV", Count: 3},
		}
	})

	collectionHelper.(*mocks.CollectionHelper).
		On("Aggregate", context.Background(), mock.Anything).
		Return(cursorHelper, nil)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "cars").Return(collectionHelper)

	carDba := databases.NewCarDatabase(dbHelper)

	counts, err := carDba.CountByCategory(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, map[string]int64{"Economy": 5, "SUV": 3}, counts)
}
