package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sunridge-rentals/rental-api/api/handlers"
	"github.com/sunridge-rentals/rental-api/databases"
	dbmocks "github.com/sunridge-rentals/rental-api/databases/mocks"
)

func TestStats_StatsHandler(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/admin/stats", nil)
	if err != nil {
		t.Fatal(err)
	}

	db := &MockDatabaseHelper{}

	counts := map[string]int64{
		"cars":       12,
		"categories": 4,
		"reviews":    30,
		"faqs":       8,
		"blogs":      5,
	}
	for name, n := range counts {
		conn := &dbmocks.CollectionHelper{}
		conn.On("CountDocuments", mock.Anything, mock.Anything).Return(n, nil)
		if name == "blogs" {
			cursor := &dbmocks.CursorHelper{}
			cursor.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
				arg := args.Get(0).(*[]struct {
					Total int64 `bson:"total"`
				})
				*arg = []struct {
					Total int64 `bson:"total"`
				}{{Total: 1234}}
			})
			conn.On("Aggregate", mock.Anything, mock.Anything).Return(cursor, nil)
		}
		db.On("Collection", name).Return(conn)
	}

	s := handlers.Stats{
		CarDB:      databases.NewCarDatabase(db),
		CategoryDB: databases.NewCategoryDatabase(db),
		ReviewDB:   databases.NewReviewDatabase(db),
		FAQDB:      databases.NewFAQDatabase(db),
		BlogDB:     databases.NewBlogDatabase(db),
	}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(s.StatsHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]int64
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, int64(12), resp["cars"])
	assert.Equal(t, int64(4), resp["categories"])
	assert.Equal(t, int64(30), resp["reviews"])
	assert.Equal(t, int64(8), resp["faqs"])
	assert.Equal(t, int64(5), resp["blogs"])
	assert.Equal(t, int64(1234), resp["blogViews"])
}
