package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sunridge-rentals/rental-api/config"
	"github.com/sunridge-rentals/rental-api/databases"
	"github.com/sunridge-rentals/rental-api/media"
	"github.com/sunridge-rentals/rental-api/models"
)

const carFolder = "rental/cars"

// Car exported for testing purposes
type Car struct {
	DB    databases.CarDatabase
	CatDB databases.CategoryDatabase
	Media media.Uploader
}

// CarHandler returns the fleet, optionally filtered by category slug,
// featured flag and availability, together with per-category counts.
func (c Car) CarHandler(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}

	if categorySlug := r.URL.Query().Get("category"); categorySlug != "" {
		category, err := c.CatDB.FindOne(r.Context(), bson.M{"slug": categorySlug})
		if err != nil {
			config.ErrorStatus("failed to get category by slug", http.StatusNotFound, w, err)
			return
		}
		filter["categoryId"] = category.ID
	}
	if r.URL.Query().Get("featured") == "true" {
		filter["isFeatured"] = true
	}
	if r.URL.Query().Get("availableOnly") == "true" {
		filter["isAvailable"] = true
	}

	sort := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cars, err := c.DB.Find(r.Context(), filter, sort)
	if err != nil {
		config.ErrorStatus("failed to get cars", http.StatusInternalServerError, w, err)
		return
	}
	if len(cars) == 0 {
		cars = []models.Car{}
	}

	counts, err := c.DB.CountByCategory(r.Context())
	if err != nil {
		config.ErrorStatus("failed to count cars by category", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(map[string]interface{}{
		"cars":           cars,
		"categoryCounts": counts,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CarByIDHandler returns a car by ObjectID, falling back to a slug lookup
// so public pages can link by slug.
func (c Car) CarByIDHandler(w http.ResponseWriter, r *http.Request) {
	carID := mux.Vars(r)["car_id"]

	filter := bson.M{"slug": carID}
	if id, err := primitive.ObjectIDFromHex(carID); err == nil {
		filter = bson.M{"_id": id}
	}

	dbResp, err := c.DB.FindOne(r.Context(), filter)
	if err != nil {
		config.ErrorStatus("failed to get car", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CreateCarHandler creates a car from a multipart form. The image is
// required; the slug is derived from the name.
func (c Car) CreateCarHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		config.ErrorStatus("failed to parse multipart form", http.StatusBadRequest, w, err)
		return
	}

	name := r.FormValue("name")
	if name == "" {
		config.ErrorStatus("name is required", http.StatusBadRequest, w, errMissingField)
		return
	}
	categoryID, err := primitive.ObjectIDFromHex(r.FormValue("categoryId"))
	if err != nil {
		config.ErrorStatus("invalid categoryId", http.StatusBadRequest, w, err)
		return
	}
	category, err := c.CatDB.FindOne(r.Context(), bson.M{"_id": categoryID})
	if err != nil {
		config.ErrorStatus("failed to get category", http.StatusBadRequest, w, err)
		return
	}

	slug := slugify(name)
	if _, err := c.DB.FindOne(r.Context(), bson.M{"slug": slug}); err == nil {
		config.ErrorStatus("a car with this name already exists", http.StatusConflict, w, errDuplicateSlug)
		return
	}

	set, err := buildUpdateSet(r.MultipartForm.Value, carFormFields)
	if err != nil {
		config.ErrorStatus("failed to parse form fields", http.StatusInternalServerError, w, err)
		return
	}

	imageURL, ok, err := replaceImage(r.Context(), c.Media, r, "image", carFolder, "")
	if err != nil {
		config.ErrorStatus("failed to upload image", http.StatusInternalServerError, w, err)
		return
	}
	if !ok {
		config.ErrorStatus("image is required", http.StatusBadRequest, w, errMissingField)
		return
	}

	now := time.Now()
	car := models.Car{
		ID:           primitive.NewObjectID(),
		Name:         name,
		Slug:         slug,
		CategoryID:   category.ID,
		CategoryName: category.Name,
		Image:        imageURL,
		IsAvailable:  r.FormValue("isAvailable") != "false",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	applyCarFields(&car, set)

	if _, err := c.DB.InsertOne(r.Context(), car); err != nil {
		config.ErrorStatus("failed to create car", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "car created successfully",
		"id":      car.ID.Hex(),
		"slug":    car.Slug,
	})
}

// UpdateCarHandler applies a partial update: present scalar fields overwrite,
// JSON array fields replace wholesale, a submitted image file replaces the
// stored asset.
func (c Car) UpdateCarHandler(w http.ResponseWriter, r *http.Request) {
	carID := mux.Vars(r)["car_id"]
	id, err := primitive.ObjectIDFromHex(carID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	existing, err := c.DB.FindOne(r.Context(), bson.M{"_id": id})
	if err != nil {
		config.ErrorStatus("failed to get car", http.StatusNotFound, w, err)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		config.ErrorStatus("failed to parse multipart form", http.StatusBadRequest, w, err)
		return
	}

	set, err := buildUpdateSet(r.MultipartForm.Value, carFormFields)
	if err != nil {
		config.ErrorStatus("failed to parse form fields", http.StatusInternalServerError, w, err)
		return
	}

	if name := r.FormValue("name"); name != "" && name != existing.Name {
		slug := slugify(name)
		if other, ferr := c.DB.FindOne(r.Context(), bson.M{"slug": slug}); ferr == nil && other.ID != id {
			config.ErrorStatus("a car with this name already exists", http.StatusConflict, w, errDuplicateSlug)
			return
		}
		set["slug"] = slug
	}

	if rawCategory := r.FormValue("categoryId"); rawCategory != "" {
		categoryID, cerr := primitive.ObjectIDFromHex(rawCategory)
		if cerr != nil {
			config.ErrorStatus("invalid categoryId", http.StatusBadRequest, w, cerr)
			return
		}
		category, cerr := c.CatDB.FindOne(r.Context(), bson.M{"_id": categoryID})
		if cerr != nil {
			config.ErrorStatus("failed to get category", http.StatusBadRequest, w, cerr)
			return
		}
		set["categoryId"] = category.ID
		set["categoryName"] = category.Name
	}

	imageURL, ok, err := replaceImage(r.Context(), c.Media, r, "image", carFolder, existing.Image)
	if err != nil {
		config.ErrorStatus("failed to upload image", http.StatusInternalServerError, w, err)
		return
	}
	if ok {
		set["image"] = imageURL
	}
	set["updatedAt"] = time.Now()

	if err := c.DB.UpdateOne(r.Context(), bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
		config.ErrorStatus("failed to update car", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "car updated successfully",
	})
}

// DeleteCarHandler removes a car. The remote image delete is best-effort;
// the record is removed either way.
func (c Car) DeleteCarHandler(w http.ResponseWriter, r *http.Request) {
	carID := mux.Vars(r)["car_id"]
	id, err := primitive.ObjectIDFromHex(carID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	existing, err := c.DB.FindOne(r.Context(), bson.M{"_id": id})
	if err != nil {
		config.ErrorStatus("failed to get car", http.StatusNotFound, w, err)
		return
	}

	if err := c.DB.DeleteOne(r.Context(), bson.M{"_id": id}); err != nil {
		config.ErrorStatus("failed to delete car", http.StatusInternalServerError, w, err)
		return
	}
	destroyImage(r.Context(), c.Media, existing.Image)

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "car deleted successfully",
	})
}

// carFormFields is the allow-list of updatable car fields. name is handled
// separately because it also drives the slug; categoryId because it resolves
// the denormalized categoryName.
var carFormFields = []formField{
	{name: "name", kind: textField},
	{name: "pricePerDay", kind: numberField},
	{name: "rating", kind: numberField},
	{name: "isFeatured", kind: boolField},
	{name: "isAvailable", kind: boolField},
	{name: "tieredPricing", kind: jsonField},
	{name: "specs", kind: jsonField},
	{name: "features", kind: jsonField},
}

// applyCarFields copies parsed create-form values onto the model
func applyCarFields(car *models.Car, set bson.M) {
	if v, ok := set["pricePerDay"].(float64); ok {
		car.PricePerDay = v
	}
	if v, ok := set["rating"].(float64); ok {
		car.Rating = v
	}
	if v, ok := set["isFeatured"].(bool); ok {
		car.IsFeatured = v
	}
	if v, ok := set["tieredPricing"]; ok {
		car.TieredPricing = toFloatMap(v)
	}
	if v, ok := set["features"]; ok {
		car.Features = toStringSlice(v)
	}
	if v, ok := set["specs"]; ok {
		car.Specs = toCarSpecs(v)
	}
}

func toFloatMap(v interface{}) map[string]float64 {
	raw, ok := v.(map[string]interface{})
	if !ok {
		return nil
	}
	out := make(map[string]float64, len(raw))
	for k, val := range raw {
		if f, ok := val.(float64); ok {
			out[k] = f
		}
	}
	return out
}

func toStringSlice(v interface{}) []string {
	raw, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, val := range raw {
		if s, ok := val.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func toCarSpecs(v interface{}) models.CarSpecs {
	var specs models.CarSpecs
	b, err := json.Marshal(v)
	if err != nil {
		return specs
	}
	_ = json.Unmarshal(b, &specs)
	return specs
}
