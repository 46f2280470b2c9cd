package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sunridge-rentals/rental-api/config"
	"github.com/sunridge-rentals/rental-api/databases"
	"github.com/sunridge-rentals/rental-api/media"
	"github.com/sunridge-rentals/rental-api/models"
)

// PageConfig describes one singleton page-content document: its fixed key,
// collection, upload folder, updatable fields and image fields.
type PageConfig struct {
	Key        string
	Route      string
	Collection string
	Folder     string
	Fields     []formField
	Images     []string
	New        func() interface{}
}

// PageContent serves one singleton page document; the same handler is
// instantiated for every page in the route table.
type PageContent struct {
	DB    databases.PageContentDatabase
	Media media.Uploader
	Cfg   PageConfig
}

// GetHandler returns the page document; a page that was never saved returns
// its zero-value shape rather than a 404 so the public site always renders.
func (p PageContent) GetHandler(w http.ResponseWriter, r *http.Request) {
	doc := p.Cfg.New()
	err := p.DB.Get(r.Context(), p.Cfg.Key, doc)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		config.ErrorStatus("failed to get page content", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(doc)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// UpdateHandler upserts the page document from a multipart form: present
// scalar fields overwrite, JSON array fields replace wholesale, submitted
// image files replace the stored assets.
func (p PageContent) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		config.ErrorStatus("failed to parse multipart form", http.StatusBadRequest, w, err)
		return
	}

	set, err := buildUpdateSet(r.MultipartForm.Value, p.Cfg.Fields)
	if err != nil {
		config.ErrorStatus("failed to parse form fields", http.StatusInternalServerError, w, err)
		return
	}

	// old image URLs come from the raw stored document
	var stored bson.M
	if gerr := p.DB.Get(r.Context(), p.Cfg.Key, &stored); gerr != nil && !errors.Is(gerr, mongo.ErrNoDocuments) {
		config.ErrorStatus("failed to get page content", http.StatusInternalServerError, w, gerr)
		return
	}

	for _, field := range p.Cfg.Images {
		oldURL, _ := stored[field].(string)
		imageURL, ok, uerr := replaceImage(r.Context(), p.Media, r, field, p.Cfg.Folder, oldURL)
		if uerr != nil {
			config.ErrorStatus("failed to upload image", http.StatusInternalServerError, w, uerr)
			return
		}
		if ok {
			set[field] = imageURL
		}
	}
	set["updatedAt"] = time.Now()

	doc := p.Cfg.New()
	if err := p.DB.Upsert(r.Context(), p.Cfg.Key, set, doc); err != nil {
		config.ErrorStatus("failed to update page content", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(doc)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// pageConfigs lists the five singleton page documents and their editable
// surface
func pageConfigs() []PageConfig {
	return []PageConfig{
		{
			Key:        "homepage",
			Route:      "homepage",
			Collection: "homepageContent",
			Folder:     "rental/pages/homepage",
			Fields: []formField{
				{name: "heroTitle", kind: textField},
				{name: "heroSubtitle", kind: textField},
				{name: "ctaTitle", kind: textField},
				{name: "ctaSubtitle", kind: textField},
				{name: "stats", kind: jsonField},
				{name: "offers", kind: jsonField},
				{name: "testimonials", kind: jsonField},
			},
			Images: []string{"heroImage"},
			New:    func() interface{} { return &models.HomepageContent{Page: "homepage"} },
		},
		{
			Key:        "about",
			Route:      "about",
			Collection: "aboutContent",
			Folder:     "rental/pages/about",
			Fields: []formField{
				{name: "title", kind: textField},
				{name: "intro", kind: textField},
				{name: "story", kind: textField},
				{name: "mission", kind: textField},
				{name: "stats", kind: jsonField},
				{name: "teamMembers", kind: jsonField},
				{name: "milestones", kind: jsonField},
			},
			Images: []string{"image"},
			New:    func() interface{} { return &models.AboutContent{Page: "about"} },
		},
		{
			Key:        "contact",
			Route:      "contact",
			Collection: "contactContent",
			Folder:     "rental/pages/contact",
			Fields: []formField{
				{name: "title", kind: textField},
				{name: "intro", kind: textField},
				{name: "phone", kind: textField},
				{name: "email", kind: textField},
				{name: "whatsapp", kind: textField},
				{name: "address", kind: textField},
				{name: "mapEmbedUrl", kind: textField},
				{name: "businessHours", kind: jsonField},
			},
			New: func() interface{} { return &models.ContactContent{Page: "contact"} },
		},
		{
			Key:        "location",
			Route:      "location",
			Collection: "locationContent",
			Folder:     "rental/pages/location",
			Fields: []formField{
				{name: "title", kind: textField},
				{name: "intro", kind: textField},
				{name: "address", kind: textField},
				{name: "directions", kind: textField},
				{name: "landmarks", kind: jsonField},
				{name: "businessHours", kind: jsonField},
			},
			Images: []string{"image"},
			New:    func() interface{} { return &models.LocationContent{Page: "location"} },
		},
		{
			Key:        "tour-routes",
			Route:      "tour-routes",
			Collection: "tourRoutesContent",
			Folder:     "rental/pages/tour-routes",
			Fields: []formField{
				{name: "title", kind: textField},
				{name: "intro", kind: textField},
				{name: "routes", kind: jsonField},
			},
			Images: []string{"heroImage"},
			New:    func() interface{} { return &models.TourRoutesContent{Page: "tour-routes"} },
		},
	}
}
