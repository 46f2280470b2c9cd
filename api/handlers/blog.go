package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sunridge-rentals/rental-api/config"
	"github.com/sunridge-rentals/rental-api/databases"
	"github.com/sunridge-rentals/rental-api/models"
)

// blogPolicy strips anything outside user-generated-content HTML from post
// bodies before they are stored.
var blogPolicy = bluemonday.UGCPolicy()

// Blog exported for testing purposes
type Blog struct {
	DB databases.BlogDatabase
}

type blogRequest struct {
	Title     string   `json:"title" validate:"required"`
	Excerpt   string   `json:"excerpt"`
	Content   string   `json:"content" validate:"required"`
	Category  string   `json:"category"`
	Author    string   `json:"author"`
	Date      string   `json:"date"`
	ReadTime  string   `json:"readTime"`
	Featured  bool     `json:"featured"`
	Published *bool    `json:"published"`
	Keywords  []string `json:"keywords"`
	Tags      []string `json:"tags"`
}

// BlogHandler returns posts; public callers filter with publishedOnly=true
// and featured=true
func (b Blog) BlogHandler(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if r.URL.Query().Get("publishedOnly") == "true" {
		filter["published"] = true
	}
	if r.URL.Query().Get("featured") == "true" {
		filter["featured"] = true
	}

	sort := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	blogs, err := b.DB.Find(r.Context(), filter, sort)
	if err != nil {
		config.ErrorStatus("failed to get blogs", http.StatusInternalServerError, w, err)
		return
	}
	if len(blogs) == 0 {
		blogs = []models.Blog{}
	}

	resp, err := json.Marshal(blogs)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(resp)
}

// BlogBySlugHandler returns a published post by slug and increments its view
// counter in the same operation.
func (b Blog) BlogBySlugHandler(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	after := options.After
	opts := &options.FindOneAndUpdateOptions{ReturnDocument: &after}
	blog, err := b.DB.FindOneAndUpdate(r.Context(),
		bson.M{"slug": slug, "published": true},
		bson.M{"$inc": bson.M{"views": 1}},
		opts)
	if err != nil {
		config.ErrorStatus("failed to get blog by slug", http.StatusNotFound, w, err)
		return
	}

	resp, err := json.Marshal(blog)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(resp)
}

// CreateBlogHandler creates a post from a JSON body. Content is sanitized
// and the slug is derived from the title.
func (b Blog) CreateBlogHandler(w http.ResponseWriter, r *http.Request) {
	var req blogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("title and content are required", http.StatusBadRequest, w, err)
		return
	}

	slug := slugify(req.Title)
	if _, err := b.DB.FindOne(r.Context(), bson.M{"slug": slug}); err == nil {
		config.ErrorStatus("a blog with this title already exists", http.StatusConflict, w, errDuplicateSlug)
		return
	}

	now := time.Now()
	blog := models.Blog{
		ID:        primitive.NewObjectID(),
		Title:     req.Title,
		Slug:      slug,
		Excerpt:   req.Excerpt,
		Content:   blogPolicy.Sanitize(req.Content),
		Category:  req.Category,
		Author:    req.Author,
		Date:      req.Date,
		ReadTime:  req.ReadTime,
		Featured:  req.Featured,
		Published: req.Published == nil || *req.Published,
		Keywords:  req.Keywords,
		Tags:      req.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := b.DB.InsertOne(r.Context(), blog); err != nil {
		config.ErrorStatus("failed to create blog", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "blog created successfully",
		"id":      blog.ID.Hex(),
		"slug":    blog.Slug,
	})
}

// UpdateBlogHandler applies a partial update from a JSON body. A title change
// re-derives the slug; content is re-sanitized.
func (b Blog) UpdateBlogHandler(w http.ResponseWriter, r *http.Request) {
	blogID := mux.Vars(r)["blog_id"]
	id, err := primitive.ObjectIDFromHex(blogID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	existing, err := b.DB.FindOne(r.Context(), bson.M{"_id": id})
	if err != nil {
		config.ErrorStatus("failed to get blog", http.StatusNotFound, w, err)
		return
	}

	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	set := bson.M{}
	for _, name := range []string{"title", "excerpt", "content", "category", "author", "date", "readTime", "featured", "published", "keywords", "tags"} {
		if v, ok := fields[name]; ok {
			set[name] = v
		}
	}
	if content, ok := set["content"].(string); ok {
		set["content"] = blogPolicy.Sanitize(content)
	}
	if title, ok := set["title"].(string); ok && title != existing.Title {
		slug := slugify(title)
		if other, ferr := b.DB.FindOne(r.Context(), bson.M{"slug": slug}); ferr == nil && other.ID != id {
			config.ErrorStatus("a blog with this title already exists", http.StatusConflict, w, errDuplicateSlug)
			return
		}
		set["slug"] = slug
	}
	set["updatedAt"] = time.Now()

	if err := b.DB.UpdateOne(r.Context(), bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
		config.ErrorStatus("failed to update blog", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "blog updated successfully",
	})
}

// DeleteBlogHandler removes a post
func (b Blog) DeleteBlogHandler(w http.ResponseWriter, r *http.Request) {
	blogID := mux.Vars(r)["blog_id"]
	id, err := primitive.ObjectIDFromHex(blogID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	if _, err := b.DB.FindOne(r.Context(), bson.M{"_id": id}); err != nil {
		config.ErrorStatus("failed to get blog", http.StatusNotFound, w, err)
		return
	}

	if err := b.DB.DeleteOne(r.Context(), bson.M{"_id": id}); err != nil {
		config.ErrorStatus("failed to delete blog", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "blog deleted successfully",
	})
}
