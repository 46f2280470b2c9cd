package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
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

const reviewFolder = "rental/reviews"

// Review exported for testing purposes
type Review struct {
	DB    databases.ReviewDatabase
	Media media.Uploader
}

// ReviewHandler returns reviews filtered by category and active flag,
// with stats computed over the returned set only.
func (rv Review) ReviewHandler(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if category := r.URL.Query().Get("category"); category != "" {
		filter["category"] = category
	}
	if r.URL.Query().Get("activeOnly") == "true" {
		filter["isActive"] = true
	}

	sort := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	reviews, err := rv.DB.Find(r.Context(), filter, sort)
	if err != nil {
		config.ErrorStatus("failed to get reviews", http.StatusInternalServerError, w, err)
		return
	}
	if len(reviews) == 0 {
		reviews = []models.Review{}
	}

	b, err := json.Marshal(map[string]interface{}{
		"reviews": reviews,
		"stats":   computeReviewStats(reviews),
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// computeReviewStats builds the average and star histogram in application
// code; a single-location fleet never has enough reviews to need the
// database to do it.
func computeReviewStats(reviews []models.Review) models.ReviewStats {
	stats := models.ReviewStats{
		Total:     len(reviews),
		Histogram: map[string]int{"1": 0, "2": 0, "3": 0, "4": 0, "5": 0},
	}
	if len(reviews) == 0 {
		return stats
	}

	sum := 0
	for _, review := range reviews {
		sum += review.Rating
		if review.Rating >= 1 && review.Rating <= 5 {
			stats.Histogram[strconv.Itoa(review.Rating)]++
		}
	}
	stats.Average = float64(sum) / float64(len(reviews))
	return stats
}

// CreateReviewHandler creates a review from a multipart form; the photo is
// optional.
func (rv Review) CreateReviewHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		config.ErrorStatus("failed to parse multipart form", http.StatusBadRequest, w, err)
		return
	}

	name := r.FormValue("name")
	text := r.FormValue("review")
	if name == "" || text == "" {
		config.ErrorStatus("name and review are required", http.StatusBadRequest, w, errMissingField)
		return
	}
	rating, err := strconv.Atoi(r.FormValue("rating"))
	if err != nil || rating < 1 || rating > 5 {
		config.ErrorStatus("rating must be between 1 and 5", http.StatusBadRequest, w, err)
		return
	}

	imageURL, _, err := replaceImage(r.Context(), rv.Media, r, "image", reviewFolder, "")
	if err != nil {
		config.ErrorStatus("failed to upload image", http.StatusInternalServerError, w, err)
		return
	}

	now := time.Now()
	review := models.Review{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Location:  r.FormValue("location"),
		Rating:    rating,
		Date:      r.FormValue("date"),
		Vehicle:   r.FormValue("vehicle"),
		Review:    text,
		Image:     imageURL,
		Verified:  r.FormValue("verified") == "true",
		Category:  r.FormValue("category"),
		IsActive:  r.FormValue("isActive") != "false",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := rv.DB.InsertOne(r.Context(), review); err != nil {
		config.ErrorStatus("failed to create review", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "review created successfully",
		"id":      review.ID.Hex(),
	})
}

// UpdateReviewHandler applies a partial update to a review
func (rv Review) UpdateReviewHandler(w http.ResponseWriter, r *http.Request) {
	reviewID := mux.Vars(r)["review_id"]
	id, err := primitive.ObjectIDFromHex(reviewID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	existing, err := rv.DB.FindOne(r.Context(), bson.M{"_id": id})
	if err != nil {
		config.ErrorStatus("failed to get review", http.StatusNotFound, w, err)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		config.ErrorStatus("failed to parse multipart form", http.StatusBadRequest, w, err)
		return
	}

	set, err := buildUpdateSet(r.MultipartForm.Value, reviewFormFields)
	if err != nil {
		config.ErrorStatus("failed to parse form fields", http.StatusInternalServerError, w, err)
		return
	}
	if rawRating, ok := set["rating"].(float64); ok && (rawRating < 1 || rawRating > 5) {
		config.ErrorStatus("rating must be between 1 and 5", http.StatusBadRequest, w, errInvalidRating)
		return
	}

	imageURL, ok, err := replaceImage(r.Context(), rv.Media, r, "image", reviewFolder, existing.Image)
	if err != nil {
		config.ErrorStatus("failed to upload image", http.StatusInternalServerError, w, err)
		return
	}
	if ok {
		set["image"] = imageURL
	}
	set["updatedAt"] = time.Now()

	if err := rv.DB.UpdateOne(r.Context(), bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
		config.ErrorStatus("failed to update review", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "review updated successfully",
	})
}

// DeleteReviewHandler removes a review; the remote image delete is
// best-effort.
func (rv Review) DeleteReviewHandler(w http.ResponseWriter, r *http.Request) {
	reviewID := mux.Vars(r)["review_id"]
	id, err := primitive.ObjectIDFromHex(reviewID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	existing, err := rv.DB.FindOne(r.Context(), bson.M{"_id": id})
	if err != nil {
		config.ErrorStatus("failed to get review", http.StatusNotFound, w, err)
		return
	}

	if err := rv.DB.DeleteOne(r.Context(), bson.M{"_id": id}); err != nil {
		config.ErrorStatus("failed to delete review", http.StatusInternalServerError, w, err)
		return
	}
	destroyImage(r.Context(), rv.Media, existing.Image)

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "review deleted successfully",
	})
}

var reviewFormFields = []formField{
	{name: "name", kind: textField},
	{name: "location", kind: textField},
	{name: "rating", kind: numberField},
	{name: "date", kind: textField},
	{name: "vehicle", kind: textField},
	{name: "review", kind: textField},
	{name: "verified", kind: boolField},
	{name: "category", kind: textField},
	{name: "isActive", kind: boolField},
}
