package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/sunridge-rentals/rental-api/config"
	"github.com/sunridge-rentals/rental-api/databases"
	"github.com/sunridge-rentals/rental-api/media"
	"github.com/sunridge-rentals/rental-api/models"
)

const categoryFolder = "rental/categories"

// Category exported for testing purposes
type Category struct {
	DB    databases.CategoryDatabase
	CarDB databases.CarDatabase
	Media media.Uploader
}

// CategoryHandler returns all categories ordered for display
func (c Category) CategoryHandler(w http.ResponseWriter, r *http.Request) {
	sort := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	categories, err := c.DB.Find(r.Context(), bson.M{}, sort)
	if err != nil {
		config.ErrorStatus("failed to get categories", http.StatusInternalServerError, w, err)
		return
	}
	if len(categories) == 0 {
		categories = []models.Category{}
	}

	b, err := json.Marshal(categories)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CategoryByIDHandler returns a category by ObjectID or slug
func (c Category) CategoryByIDHandler(w http.ResponseWriter, r *http.Request) {
	categoryID := mux.Vars(r)["category_id"]

	filter := bson.M{"slug": categoryID}
	if id, err := primitive.ObjectIDFromHex(categoryID); err == nil {
		filter = bson.M{"_id": id}
	}

	dbResp, err := c.DB.FindOne(r.Context(), filter)
	if err != nil {
		config.ErrorStatus("failed to get category", http.StatusNotFound, w, err)
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

// CreateCategoryHandler creates a category from a multipart form. The image
// is required; the slug is derived from the name.
func (c Category) CreateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		config.ErrorStatus("failed to parse multipart form", http.StatusBadRequest, w, err)
		return
	}

	name := r.FormValue("name")
	if name == "" {
		config.ErrorStatus("name is required", http.StatusBadRequest, w, errMissingField)
		return
	}

	slug := slugify(name)
	if _, err := c.DB.FindOne(r.Context(), bson.M{"slug": slug}); err == nil {
		config.ErrorStatus("a category with this name already exists", http.StatusConflict, w, errDuplicateSlug)
		return
	}

	set, err := buildUpdateSet(r.MultipartForm.Value, categoryFormFields)
	if err != nil {
		config.ErrorStatus("failed to parse form fields", http.StatusInternalServerError, w, err)
		return
	}

	imageURL, ok, err := replaceImage(r.Context(), c.Media, r, "image", categoryFolder, "")
	if err != nil {
		config.ErrorStatus("failed to upload image", http.StatusInternalServerError, w, err)
		return
	}
	if !ok {
		config.ErrorStatus("image is required", http.StatusBadRequest, w, errMissingField)
		return
	}

	now := time.Now()
	category := models.Category{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Slug:      slug,
		Image:     imageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyCategoryFields(&category, set)

	if _, err := c.DB.InsertOne(r.Context(), category); err != nil {
		config.ErrorStatus("failed to create category", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "category created successfully",
		"id":      category.ID.Hex(),
		"slug":    category.Slug,
	})
}

// UpdateCategoryHandler applies a partial update. A rename also rewrites the
// denormalized categoryName on every car in the category.
func (c Category) UpdateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	categoryID := mux.Vars(r)["category_id"]
	id, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	existing, err := c.DB.FindOne(r.Context(), bson.M{"_id": id})
	if err != nil {
		config.ErrorStatus("failed to get category", http.StatusNotFound, w, err)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		config.ErrorStatus("failed to parse multipart form", http.StatusBadRequest, w, err)
		return
	}

	set, err := buildUpdateSet(r.MultipartForm.Value, categoryFormFields)
	if err != nil {
		config.ErrorStatus("failed to parse form fields", http.StatusInternalServerError, w, err)
		return
	}

	newName := r.FormValue("name")
	renamed := newName != "" && newName != existing.Name
	if renamed {
		slug := slugify(newName)
		if other, ferr := c.DB.FindOne(r.Context(), bson.M{"slug": slug}); ferr == nil && other.ID != id {
			config.ErrorStatus("a category with this name already exists", http.StatusConflict, w, errDuplicateSlug)
			return
		}
		set["slug"] = slug
	}

	imageURL, ok, err := replaceImage(r.Context(), c.Media, r, "image", categoryFolder, existing.Image)
	if err != nil {
		config.ErrorStatus("failed to upload image", http.StatusInternalServerError, w, err)
		return
	}
	if ok {
		set["image"] = imageURL
	}
	set["updatedAt"] = time.Now()

	if err := c.DB.UpdateOne(r.Context(), bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
		config.ErrorStatus("failed to update category", http.StatusInternalServerError, w, err)
		return
	}

	if renamed {
		modified, merr := c.CarDB.UpdateMany(r.Context(),
			bson.M{"categoryId": id},
			bson.M{"$set": bson.M{"categoryName": newName}})
		if merr != nil {
			config.ErrorStatus("failed to propagate category rename", http.StatusInternalServerError, w, merr)
			return
		}
		zap.S().Infow("propagated category rename",
			"category", newName,
			"cars", modified)
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "category updated successfully",
	})
}

// DeleteCategoryHandler removes a category unless cars still reference it.
// The remote image delete is best-effort.
func (c Category) DeleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	categoryID := mux.Vars(r)["category_id"]
	id, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	existing, err := c.DB.FindOne(r.Context(), bson.M{"_id": id})
	if err != nil {
		config.ErrorStatus("failed to get category", http.StatusNotFound, w, err)
		return
	}

	inUse, err := c.CarDB.CountDocuments(r.Context(), bson.M{"categoryId": id})
	if err != nil {
		config.ErrorStatus("failed to count cars in category", http.StatusInternalServerError, w, err)
		return
	}
	if inUse > 0 {
		config.ErrorStatus("category still has cars", http.StatusConflict, w, errCategoryInUse)
		return
	}

	if err := c.DB.DeleteOne(r.Context(), bson.M{"_id": id}); err != nil {
		config.ErrorStatus("failed to delete category", http.StatusInternalServerError, w, err)
		return
	}
	destroyImage(r.Context(), c.Media, existing.Image)

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "category deleted successfully",
	})
}

var categoryFormFields = []formField{
	{name: "name", kind: textField},
	{name: "description", kind: textField},
	{name: "icon", kind: textField},
	{name: "priceFrom", kind: numberField},
	{name: "order", kind: numberField},
	{name: "features", kind: jsonField},
}

func applyCategoryFields(category *models.Category, set bson.M) {
	if v, ok := set["description"].(string); ok {
		category.Description = v
	}
	if v, ok := set["icon"].(string); ok {
		category.Icon = v
	}
	if v, ok := set["priceFrom"].(float64); ok {
		category.PriceFrom = v
	}
	if v, ok := set["order"].(float64); ok {
		category.Order = int(v)
	}
	if v, ok := set["features"]; ok {
		category.Features = toStringSlice(v)
	}
}
