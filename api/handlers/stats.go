package handlers

import (
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/sunridge-rentals/rental-api/config"
	"github.com/sunridge-rentals/rental-api/databases"
)

// Stats exported for testing purposes
type Stats struct {
	CarDB      databases.CarDatabase
	CategoryDB databases.CategoryDatabase
	ReviewDB   databases.ReviewDatabase
	FAQDB      databases.FAQDatabase
	BlogDB     databases.BlogDatabase
}

// StatsHandler returns record counts per collection and the total blog view
// count for the admin dashboard
func (s Stats) StatsHandler(w http.ResponseWriter, r *http.Request) {
	cars, err := s.CarDB.CountDocuments(r.Context(), bson.M{})
	if err != nil {
		config.ErrorStatus("failed to count cars", http.StatusInternalServerError, w, err)
		return
	}
	categories, err := s.CategoryDB.CountDocuments(r.Context(), bson.M{})
	if err != nil {
		config.ErrorStatus("failed to count categories", http.StatusInternalServerError, w, err)
		return
	}
	reviews, err := s.ReviewDB.CountDocuments(r.Context(), bson.M{})
	if err != nil {
		config.ErrorStatus("failed to count reviews", http.StatusInternalServerError, w, err)
		return
	}
	faqs, err := s.FAQDB.CountDocuments(r.Context(), bson.M{})
	if err != nil {
		config.ErrorStatus("failed to count faqs", http.StatusInternalServerError, w, err)
		return
	}
	blogs, err := s.BlogDB.CountDocuments(r.Context(), bson.M{})
	if err != nil {
		config.ErrorStatus("failed to count blogs", http.StatusInternalServerError, w, err)
		return
	}
	views, err := s.BlogDB.TotalViews(r.Context())
	if err != nil {
		config.ErrorStatus("failed to sum blog views", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(map[string]int64{
		"cars":       cars,
		"categories": categories,
		"reviews":    reviews,
		"faqs":       faqs,
		"blogs":      blogs,
		"blogViews":  views,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
