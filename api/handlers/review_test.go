package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/sunridge-rentals/rental-api/api/handlers"
	"github.com/sunridge-rentals/rental-api/databases"
	dbmocks "github.com/sunridge-rentals/rental-api/databases/mocks"
	mediamocks "github.com/sunridge-rentals/rental-api/media/mocks"
	"github.com/sunridge-rentals/rental-api/models"
)

func TestReview_ReviewHandlerStatsOverFilteredSet(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/reviews?activeOnly=true", nil)
	if err != nil {
		t.Fatal(err)
	}

	db := &MockDatabaseHelper{}
	reviewsConn := &dbmocks.CollectionHelper{}
	cursor := &dbmocks.CursorHelper{}

	cursor.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]models.Review)
		*arg = []models.Review{
			{Name: "Amina", Rating: 5, IsActive: true},
			{Name: "Joseph", Rating: 4, IsActive: true},
			{Name: "Grace", Rating: 5, IsActive: true},
		}
	})
	reviewsConn.On("Find", mock.Anything, bson.M{"isActive": true}, mock.Anything).Return(cursor, nil)
	db.On("Collection", "reviews").Return(reviewsConn)

	rv := handlers.Review{DB: databases.NewReviewDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(rv.ReviewHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Reviews []models.Review    `json:"reviews"`
		Stats   models.ReviewStats `json:"stats"`
	}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp.Reviews, 3)
	assert.Equal(t, 3, resp.Stats.Total)
	assert.InDelta(t, 4.6667, resp.Stats.Average, 0.001)
	assert.Equal(t, 2, resp.Stats.Histogram["5"])
	assert.Equal(t, 1, resp.Stats.Histogram["4"])
	assert.Equal(t, 0, resp.Stats.Histogram["1"])
}

func TestReview_ReviewHandlerEmptySet(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/reviews", nil)
	if err != nil {
		t.Fatal(err)
	}

	db := &MockDatabaseHelper{}
	reviewsConn := &dbmocks.CollectionHelper{}
	cursor := &dbmocks.CursorHelper{}

	cursor.On("Decode", mock.Anything).Return(nil)
	reviewsConn.On("Find", mock.Anything, bson.M{}, mock.Anything).Return(cursor, nil)
	db.On("Collection", "reviews").Return(reviewsConn)

	rv := handlers.Review{DB: databases.NewReviewDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(rv.ReviewHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Reviews []models.Review    `json:"reviews"`
		Stats   models.ReviewStats `json:"stats"`
	}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotNil(t, resp.Reviews)
	assert.Equal(t, 0, resp.Stats.Total)
	assert.Equal(t, 0.0, resp.Stats.Average)
}

func TestReview_CreateReviewHandlerInvalidRating(t *testing.T) {
	body, contentType := multipartForm(t, map[string]string{
		"name":   "Amina",
		"review": "Great service",
		"rating": "9",
	})

	req, err := http.NewRequest("POST", "/api/reviews", body)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", contentType)

	db := &MockDatabaseHelper{}
	rv := handlers.Review{DB: databases.NewReviewDatabase(db), Media: &mediamocks.Uploader{}}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(rv.CreateReviewHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "rating must be between 1 and 5")
}

func TestReview_CreateReviewHandlerMissingName(t *testing.T) {
	body, contentType := multipartForm(t, map[string]string{
		"review": "Great service",
		"rating": "5",
	})

	req, err := http.NewRequest("POST", "/api/reviews", body)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", contentType)

	db := &MockDatabaseHelper{}
	rv := handlers.Review{DB: databases.NewReviewDatabase(db), Media: &mediamocks.Uploader{}}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(rv.CreateReviewHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "name and review are required")
}
