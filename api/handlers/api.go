package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/sunridge-rentals/rental-api/api"
	"github.com/sunridge-rentals/rental-api/api/scheduler"
	"github.com/sunridge-rentals/rental-api/config"
	"github.com/sunridge-rentals/rental-api/databases"
	"github.com/sunridge-rentals/rental-api/media"
)

// App stores the router, db connection and media client, so it can be reused
type App struct {
	Router    *mux.Router
	Config    config.Config
	Media     media.Uploader
	Scheduler *scheduler.Scheduler
	dbHelper  databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	r := mux.NewRouter()

	auth := Auth{ADB: databases.NewAdminDatabase(a.dbHelper), RDB: databases.NewAdminResetDatabase(a.dbHelper)}
	car := Car{DB: databases.NewCarDatabase(a.dbHelper), CatDB: databases.NewCategoryDatabase(a.dbHelper), Media: a.Media}
	category := Category{DB: databases.NewCategoryDatabase(a.dbHelper), CarDB: databases.NewCarDatabase(a.dbHelper), Media: a.Media}
	review := Review{DB: databases.NewReviewDatabase(a.dbHelper), Media: a.Media}
	faq := FAQ{DB: databases.NewFAQDatabase(a.dbHelper)}
	blog := Blog{DB: databases.NewBlogDatabase(a.dbHelper)}
	stats := Stats{
		CarDB:      databases.NewCarDatabase(a.dbHelper),
		CategoryDB: databases.NewCategoryDatabase(a.dbHelper),
		ReviewDB:   databases.NewReviewDatabase(a.dbHelper),
		FAQDB:      databases.NewFAQDatabase(a.dbHelper),
		BlogDB:     databases.NewBlogDatabase(a.dbHelper),
	}
	cloudinaryHandler := CloudinaryHandler{}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api").Subrouter()

	apiCreate.Handle("/auth/login", http.HandlerFunc(auth.LoginHandler)).Methods("POST")
	apiCreate.Handle("/auth/logout", http.HandlerFunc(auth.LogoutHandler)).Methods("POST")
	apiCreate.Handle("/auth/me", api.Session(http.HandlerFunc(auth.MeHandler))).Methods("GET")
	apiCreate.Handle("/auth/forgot-password", http.HandlerFunc(auth.ForgotPasswordHandler)).Methods("POST")
	apiCreate.Handle("/auth/reset-password", http.HandlerFunc(auth.ResetPasswordHandler)).Methods("POST")

	apiCreate.Handle("/cars", http.HandlerFunc(car.CarHandler)).Methods("GET")
	apiCreate.Handle("/cars", api.Session(http.HandlerFunc(car.CreateCarHandler))).Methods("POST")
	apiCreate.Handle("/cars/{car_id}", http.HandlerFunc(car.CarByIDHandler)).Methods("GET")
	apiCreate.Handle("/cars/{car_id}", api.Session(http.HandlerFunc(car.UpdateCarHandler))).Methods("PUT")
	apiCreate.Handle("/cars/{car_id}", api.Session(http.HandlerFunc(car.DeleteCarHandler))).Methods("DELETE")

	apiCreate.Handle("/categories", http.HandlerFunc(category.CategoryHandler)).Methods("GET")
	apiCreate.Handle("/categories", api.Session(http.HandlerFunc(category.CreateCategoryHandler))).Methods("POST")
	apiCreate.Handle("/categories/{category_id}", http.HandlerFunc(category.CategoryByIDHandler)).Methods("GET")
	apiCreate.Handle("/categories/{category_id}", api.Session(http.HandlerFunc(category.UpdateCategoryHandler))).Methods("PUT")
	apiCreate.Handle("/categories/{category_id}", api.Session(http.HandlerFunc(category.DeleteCategoryHandler))).Methods("DELETE")

	apiCreate.Handle("/reviews", http.HandlerFunc(review.ReviewHandler)).Methods("GET")
	apiCreate.Handle("/reviews", api.Session(http.HandlerFunc(review.CreateReviewHandler))).Methods("POST")
	apiCreate.Handle("/reviews/{review_id}", api.Session(http.HandlerFunc(review.UpdateReviewHandler))).Methods("PUT")
	apiCreate.Handle("/reviews/{review_id}", api.Session(http.HandlerFunc(review.DeleteReviewHandler))).Methods("DELETE")

	apiCreate.Handle("/faqs", http.HandlerFunc(faq.FAQHandler)).Methods("GET")
	apiCreate.Handle("/faqs", api.Session(http.HandlerFunc(faq.CreateFAQHandler))).Methods("POST")
	apiCreate.Handle("/faqs/{faq_id}", api.Session(http.HandlerFunc(faq.UpdateFAQHandler))).Methods("PUT")
	apiCreate.Handle("/faqs/{faq_id}", api.Session(http.HandlerFunc(faq.DeleteFAQHandler))).Methods("DELETE")

	apiCreate.Handle("/blogs", http.HandlerFunc(blog.BlogHandler)).Methods("GET")
	apiCreate.Handle("/blogs", api.Session(http.HandlerFunc(blog.CreateBlogHandler))).Methods("POST")
	apiCreate.Handle("/blogs/{slug}", http.HandlerFunc(blog.BlogBySlugHandler)).Methods("GET")
	apiCreate.Handle("/blogs/{blog_id}", api.Session(http.HandlerFunc(blog.UpdateBlogHandler))).Methods("PUT")
	apiCreate.Handle("/blogs/{blog_id}", api.Session(http.HandlerFunc(blog.DeleteBlogHandler))).Methods("DELETE")

	for _, cfg := range pageConfigs() {
		page := PageContent{
			DB:    databases.NewPageContentDatabase(a.dbHelper, cfg.Collection),
			Media: a.Media,
			Cfg:   cfg,
		}
		apiCreate.Handle("/"+cfg.Route, http.HandlerFunc(page.GetHandler)).Methods("GET")
		apiCreate.Handle("/"+cfg.Route, api.Session(http.HandlerFunc(page.UpdateHandler))).Methods("PUT")
	}

	apiCreate.Handle("/admin/stats", api.Session(http.HandlerFunc(stats.StatsHandler))).Methods("GET")
	apiCreate.Handle("/media/signature", api.Session(http.HandlerFunc(cloudinaryHandler.GenerateSignature))).Methods("POST")

	return r
}

// Initialize connects the database, the media host and the router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("rental-api has connected to the database")

	if a.Media == nil {
		m, err := media.New()
		if err != nil {
			zap.S().With(err).Error("failed to create media client")
			return err
		}
		a.Media = m
	}

	// initialize api router
	a.initializeRoutes()

	a.Scheduler = a.newScheduler()
	a.Scheduler.Start()
	return nil
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func (a *App) newScheduler() *scheduler.Scheduler {
	configs := pageConfigs()
	pageDBs := make([]databases.PageContentDatabase, 0, len(configs))
	pageKeys := make([]string, 0, len(configs))
	for _, cfg := range configs {
		pageDBs = append(pageDBs, databases.NewPageContentDatabase(a.dbHelper, cfg.Collection))
		pageKeys = append(pageKeys, cfg.Key)
	}
	return scheduler.NewScheduler(
		databases.NewCarDatabase(a.dbHelper),
		databases.NewCategoryDatabase(a.dbHelper),
		databases.NewReviewDatabase(a.dbHelper),
		databases.NewBlogDatabase(a.dbHelper),
		pageDBs,
		pageKeys,
		a.Media,
	)
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(map[string]bool{"alive": true})
	w.Write(b)
}
