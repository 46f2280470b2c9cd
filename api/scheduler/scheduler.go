package scheduler

import (
	"context"
	"regexp"
	"time"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/sunridge-rentals/rental-api/databases"
	"github.com/sunridge-rentals/rental-api/media"
)

// assetFolderPrefix scopes the sweep to this application's uploads only
const assetFolderPrefix = "rental"

// minAssetAge keeps the sweep from deleting an image that was uploaded
// moments ago and whose record has not been written yet
const minAssetAge = 24 * time.Hour

// deliveryURLPattern finds upload delivery URLs embedded in post HTML, where
// images live inline rather than in a dedicated field
var deliveryURLPattern = regexp.MustCompile(`https://[^\s"'<>()]+/upload/[^\s"'<>()]+`)

// Scheduler runs periodic background jobs, currently only the orphaned image
// sweep.
type Scheduler struct {
	cron       *cron.Cron
	CarDB      databases.CarDatabase
	CategoryDB databases.CategoryDatabase
	ReviewDB   databases.ReviewDatabase
	BlogDB     databases.BlogDatabase
	PageDBs    []databases.PageContentDatabase
	PageKeys   []string
	Media      media.Uploader
}

// NewScheduler creates a new scheduler instance. pageDBs and pageKeys are
// parallel slices, one entry per singleton page collection.
func NewScheduler(
	carDB databases.CarDatabase,
	categoryDB databases.CategoryDatabase,
	reviewDB databases.ReviewDatabase,
	blogDB databases.BlogDatabase,
	pageDBs []databases.PageContentDatabase,
	pageKeys []string,
	m media.Uploader,
) *Scheduler {
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		CarDB:      carDB,
		CategoryDB: categoryDB,
		ReviewDB:   reviewDB,
		BlogDB:     blogDB,
		PageDBs:    pageDBs,
		PageKeys:   pageKeys,
		Media:      m,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Sweep orphaned images daily at 3 AM UTC
	_, err := s.cron.AddFunc("0 3 * * *", s.SweepOrphanedImages)
	if err != nil {
		zap.S().Errorw("failed to register image sweep job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("image sweep scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("image sweep scheduler stopped")
}

// SweepOrphanedImages deletes hosted images that no database record points
// at. Crashed uploads and replaced images leave these behind.
func (s *Scheduler) SweepOrphanedImages() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	referenced, err := s.referencedPublicIDs(ctx)
	if err != nil {
		zap.S().Errorw("failed to collect referenced images", "error", err)
		return
	}

	assets, err := s.Media.List(ctx, assetFolderPrefix)
	if err != nil {
		zap.S().Errorw("failed to list hosted images", "error", err)
		return
	}

	cutoff := time.Now().Add(-minAssetAge)
	removed := 0
	for _, asset := range assets {
		if referenced[asset.PublicID] {
			continue
		}
		if asset.CreatedAt.After(cutoff) {
			continue
		}
		if err := s.Media.Destroy(ctx, asset.SecureURL); err != nil {
			zap.S().Warnw("failed to delete orphaned image",
				"publicId", asset.PublicID,
				"error", err,
			)
			continue
		}
		removed++
	}

	zap.S().Infow("orphaned image sweep complete",
		"assetsListed", len(assets),
		"referenced", len(referenced),
		"removed", removed,
	)
}

// referencedPublicIDs walks every record that can hold an image URL and
// returns the set of public IDs still in use.
func (s *Scheduler) referencedPublicIDs(ctx context.Context) (map[string]bool, error) {
	referenced := make(map[string]bool)
	add := func(url string) {
		if id := media.PublicIDFromURL(url); id != "" {
			referenced[id] = true
		}
	}

	cars, err := s.CarDB.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	for _, car := range cars {
		add(car.Image)
	}

	categories, err := s.CategoryDB.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	for _, category := range categories {
		add(category.Image)
	}

	reviews, err := s.ReviewDB.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	for _, review := range reviews {
		add(review.Image)
	}

	// post images live inline in the stored HTML, not in a dedicated field
	blogs, err := s.BlogDB.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	for _, blog := range blogs {
		for _, url := range deliveryURLPattern.FindAllString(blog.Content, -1) {
			add(url)
		}
		for _, url := range deliveryURLPattern.FindAllString(blog.Excerpt, -1) {
			add(url)
		}
	}

	for i, pageDB := range s.PageDBs {
		var doc bson.M
		if err := pageDB.Get(ctx, s.PageKeys[i], &doc); err != nil {
			// a page that was never saved has no images to protect
			continue
		}
		collectImageURLs(doc, add)
	}

	return referenced, nil
}

// collectImageURLs recursively walks a decoded document and reports every
// string that looks like an upload delivery URL.
func collectImageURLs(v interface{}, add func(string)) {
	switch val := v.(type) {
	case string:
		add(val)
	case bson.M:
		for _, nested := range val {
			collectImageURLs(nested, add)
		}
	case bson.D:
		for _, elem := range val {
			collectImageURLs(elem.Value, add)
		}
	case bson.A:
		for _, nested := range val {
			collectImageURLs(nested, add)
		}
	case []interface{}:
		for _, nested := range val {
			collectImageURLs(nested, add)
		}
	}
}
