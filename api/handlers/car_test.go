package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sunridge-rentals/rental-api/api/handlers"
	"github.com/sunridge-rentals/rental-api/databases"
	dbmocks "github.com/sunridge-rentals/rental-api/databases/mocks"
	mediamocks "github.com/sunridge-rentals/rental-api/media/mocks"
	"github.com/sunridge-rentals/rental-api/models"
)

type MockDatabaseHelper struct {
	mock.Mock
}

// Client provides a mock function.
func (_m *MockDatabaseHelper) Client() databases.ClientHelper {
	ret := _m.Called()

	var r0 databases.ClientHelper
	if rf, ok := ret.Get(0).(func() databases.ClientHelper); ok {
		r0 = rf()
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(databases.ClientHelper)
		}
	}

	return r0
}

// Collection provides a mock function.
func (_m *MockDatabaseHelper) Collection(name string) databases.CollectionHelper {
	ret := _m.Called(name)

	var r0 databases.CollectionHelper
	if rf, ok := ret.Get(0).(func(string) databases.CollectionHelper); ok {
		r0 = rf(name)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(databases.CollectionHelper)
		}
	}

	return r0
}

// multipartForm builds a multipart body with only text fields
func multipartForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		assert.NoError(t, writer.WriteField(k, v))
	}
	assert.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestCar_UpdateCarHandlerInvalidID(t *testing.T) {
	req, err := http.NewRequest("PUT", "/api/cars/1234", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"car_id": "1234"})

	db := &MockDatabaseHelper{}
	c := handlers.Car{DB: databases.NewCarDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(c.UpdateCarHandler)
	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusBadRequest {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusBadRequest)
	}

	expected := models.ErrorMessageResponse{Response: models.MessageError{Message: "failed to get objectID from Hex", Error: "the provided hex string is not a valid ObjectID"}}
	b, _ := json.Marshal(expected)
	if rr.Body.String() != string(b) {
		t.Errorf("handler returned unexpected body: \ngot: %v \nwant: %v", rr.Body.String(), string(b))
	}
}

func TestCar_CarByIDHandlerSlugFallback(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/cars/toyota-corolla", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"car_id": "toyota-corolla"})

	db := &MockDatabaseHelper{}
	conn := &dbmocks.CollectionHelper{}
	singleResultHelper := &dbmocks.SingleResultHelper{}

	singleResultHelper.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*models.Car)
		arg.Name = "Toyota Corolla"
		arg.Slug = "toyota-corolla"
	})
	conn.On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	db.On("Collection", "cars").Return(conn)

	c := handlers.Car{DB: databases.NewCarDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(c.CarByIDHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"slug":"toyota-corolla"`)
}

func TestCar_CreateCarHandlerMissingImage(t *testing.T) {
	categoryID := primitive.NewObjectID()
	body, contentType := multipartForm(t, map[string]string{
		"name":       "Toyota Corolla",
		"categoryId": categoryID.Hex(),
	})

	req, err := http.NewRequest("POST", "/api/cars", body)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", contentType)

	db := &MockDatabaseHelper{}
	carsConn := &dbmocks.CollectionHelper{}
	categoriesConn := &dbmocks.CollectionHelper{}
	categoryResult := &dbmocks.SingleResultHelper{}
	noCarResult := &dbmocks.SingleResultHelper{}

	categoryResult.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*models.Category)
		arg.ID = categoryID
		arg.Name = "Economy"
	})
	noCarResult.On("Decode", mock.Anything).Return(errors.New("mongo: no documents in result"))

	categoriesConn.On("FindOne", mock.Anything, mock.Anything).Return(categoryResult)
	carsConn.On("FindOne", mock.Anything, mock.Anything).Return(noCarResult)
	db.On("Collection", "categories").Return(categoriesConn)
	db.On("Collection", "cars").Return(carsConn)

	m := &mediamocks.Uploader{}
	c := handlers.Car{DB: databases.NewCarDatabase(db), CatDB: databases.NewCategoryDatabase(db), Media: m}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(c.CreateCarHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "image is required")
	m.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
}

func TestCar_CreateCarHandlerEmptyImageFile(t *testing.T) {
	categoryID := primitive.NewObjectID()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	assert.NoError(t, writer.WriteField("name", "Toyota Corolla"))
	assert.NoError(t, writer.WriteField("categoryId", categoryID.Hex()))
	_, err := writer.CreateFormFile("image", "empty.jpg")
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	req, err := http.NewRequest("POST", "/api/cars", body)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	db := &MockDatabaseHelper{}
	carsConn := &dbmocks.CollectionHelper{}
	categoriesConn := &dbmocks.CollectionHelper{}
	categoryResult := &dbmocks.SingleResultHelper{}
	noCarResult := &dbmocks.SingleResultHelper{}

	categoryResult.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*models.Category)
		arg.ID = categoryID
		arg.Name = "Economy"
	})
	noCarResult.On("Decode", mock.Anything).Return(errors.New("mongo: no documents in result"))

	categoriesConn.On("FindOne", mock.Anything, mock.Anything).Return(categoryResult)
	carsConn.On("FindOne", mock.Anything, mock.Anything).Return(noCarResult)
	db.On("Collection", "categories").Return(categoriesConn)
	db.On("Collection", "cars").Return(carsConn)

	m := &mediamocks.Uploader{}
	c := handlers.Car{DB: databases.NewCarDatabase(db), CatDB: databases.NewCategoryDatabase(db), Media: m}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(c.CreateCarHandler)
	handler.ServeHTTP(rr, req)

	// a zero-byte file part is treated the same as no file at all
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "image is required")
	m.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
}

func TestCar_CreateCarHandlerDuplicateSlug(t *testing.T) {
	categoryID := primitive.NewObjectID()
	body, contentType := multipartForm(t, map[string]string{
		"name":       "Toyota Corolla",
		"categoryId": categoryID.Hex(),
	})

	req, err := http.NewRequest("POST", "/api/cars", body)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", contentType)

	db := &MockDatabaseHelper{}
	carsConn := &dbmocks.CollectionHelper{}
	categoriesConn := &dbmocks.CollectionHelper{}
	categoryResult := &dbmocks.SingleResultHelper{}
	existingCarResult := &dbmocks.SingleResultHelper{}

	categoryResult.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*models.Category)
		arg.ID = categoryID
		arg.Name = "Economy"
	})
	existingCarResult.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*models.Car)
		arg.ID = primitive.NewObjectID()
		arg.Slug = "toyota-corolla"
	})

	categoriesConn.On("FindOne", mock.Anything, mock.Anything).Return(categoryResult)
	carsConn.On("FindOne", mock.Anything, mock.Anything).Return(existingCarResult)
	db.On("Collection", "categories").Return(categoriesConn)
	db.On("Collection", "cars").Return(carsConn)

	c := handlers.Car{DB: databases.NewCarDatabase(db), CatDB: databases.NewCategoryDatabase(db), Media: &mediamocks.Uploader{}}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(c.CreateCarHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "a car with this name already exists")
}

func TestCar_DeleteCarHandlerMediaFailureStillDeletes(t *testing.T) {
	carID := primitive.NewObjectID()
	req, err := http.NewRequest("DELETE", "/api/cars/"+carID.Hex(), nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"car_id": carID.Hex()})

	db := &MockDatabaseHelper{}
	carsConn := &dbmocks.CollectionHelper{}
	carResult := &dbmocks.SingleResultHelper{}

	carResult.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*models.Car)
		arg.ID = carID
		arg.Image = "https://res.cloudinary.com/demo/image/upload/v1/rental/cars/abc.jpg"
	})
	carsConn.On("FindOne", mock.Anything, mock.Anything).Return(carResult)
	carsConn.On("DeleteOne", mock.Anything, mock.Anything).Return(nil)
	db.On("Collection", "cars").Return(carsConn)

	m := &mediamocks.Uploader{}
	m.On("Destroy", mock.Anything, mock.Anything).Return(errors.New("cloudinary down"))

	c := handlers.Car{DB: databases.NewCarDatabase(db), Media: m}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(c.DeleteCarHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "car deleted successfully")
	carsConn.AssertCalled(t, "DeleteOne", mock.Anything, mock.Anything)
	m.AssertCalled(t, "Destroy", mock.Anything, "https://res.cloudinary.com/demo/image/upload/v1/rental/cars/abc.jpg")
}
