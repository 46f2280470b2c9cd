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
	"github.com/sunridge-rentals/rental-api/models"
)

// FAQ exported for testing purposes
type FAQ struct {
	DB databases.FAQDatabase
}

type faqRequest struct {
	Category string `json:"category"`
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
	Order    int    `json:"order"`
	IsActive *bool  `json:"isActive"`
}

// FAQHandler returns faqs filtered by category and active flag, sorted by
// display order
func (f FAQ) FAQHandler(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if category := r.URL.Query().Get("category"); category != "" {
		filter["category"] = category
	}
	if r.URL.Query().Get("activeOnly") == "true" {
		filter["isActive"] = true
	}

	sort := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	faqs, err := f.DB.Find(r.Context(), filter, sort)
	if err != nil {
		config.ErrorStatus("failed to get faqs", http.StatusInternalServerError, w, err)
		return
	}
	if len(faqs) == 0 {
		faqs = []models.FAQ{}
	}

	b, err := json.Marshal(faqs)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CreateFAQHandler creates a faq from a JSON body
func (f FAQ) CreateFAQHandler(w http.ResponseWriter, r *http.Request) {
	var req faqRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("question and answer are required", http.StatusBadRequest, w, err)
		return
	}

	now := time.Now()
	faq := models.FAQ{
		ID:        primitive.NewObjectID(),
		Category:  req.Category,
		Question:  req.Question,
		Answer:    req.Answer,
		Order:     req.Order,
		IsActive:  req.IsActive == nil || *req.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.DB.InsertOne(r.Context(), faq); err != nil {
		config.ErrorStatus("failed to create faq", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "faq created successfully",
		"id":      faq.ID.Hex(),
	})
}

// UpdateFAQHandler applies a partial update from a JSON body; absent fields
// keep their stored value
func (f FAQ) UpdateFAQHandler(w http.ResponseWriter, r *http.Request) {
	faqID := mux.Vars(r)["faq_id"]
	id, err := primitive.ObjectIDFromHex(faqID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	if _, err := f.DB.FindOne(r.Context(), bson.M{"_id": id}); err != nil {
		config.ErrorStatus("failed to get faq", http.StatusNotFound, w, err)
		return
	}

	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	set := bson.M{}
	for _, name := range []string{"category", "question", "answer", "order", "isActive"} {
		if v, ok := fields[name]; ok {
			set[name] = v
		}
	}
	set["updatedAt"] = time.Now()

	if err := f.DB.UpdateOne(r.Context(), bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
		config.ErrorStatus("failed to update faq", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "faq updated successfully",
	})
}

// DeleteFAQHandler removes a faq
func (f FAQ) DeleteFAQHandler(w http.ResponseWriter, r *http.Request) {
	faqID := mux.Vars(r)["faq_id"]
	id, err := primitive.ObjectIDFromHex(faqID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	if _, err := f.DB.FindOne(r.Context(), bson.M{"_id": id}); err != nil {
		config.ErrorStatus("failed to get faq", http.StatusNotFound, w, err)
		return
	}

	if err := f.DB.DeleteOne(r.Context(), bson.M{"_id": id}); err != nil {
		config.ErrorStatus("failed to delete faq", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "faq deleted successfully",
	})
}
