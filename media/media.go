// Package media wraps the hosted image service. Database records store only
// the delivery URL; the public ID used for deletes is recomputed from it.
package media

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// Asset is one stored image as reported by the media host
type Asset struct {
	PublicID  string
	SecureURL string
	CreatedAt time.Time
}

// Uploader is the surface the handlers and the reconciliation sweep need
// from the media host
type Uploader interface {
	Upload(ctx context.Context, file interface{}, folder string) (string, error)
	Destroy(ctx context.Context, url string) error
	List(ctx context.Context, prefix string) ([]Asset, error)
}

// Cloudinary implements Uploader against the Cloudinary API
type Cloudinary struct {
	cld *cloudinary.Cloudinary
}

// New creates a Cloudinary uploader from the CLOUDINARY_URL environment variable
func New() (*Cloudinary, error) {
	cld, err := cloudinary.New()
	if err != nil {
		return nil, err
	}
	return &Cloudinary{cld: cld}, nil
}

// Upload stores the file under the given folder and returns its delivery URL
func (c *Cloudinary) Upload(ctx context.Context, file interface{}, folder string) (string, error) {
	res, err := c.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:   folder,
		PublicID: uuid.NewString(),
	})
	if err != nil {
		return "", err
	}
	return res.SecureURL, nil
}

// Destroy removes the asset the given delivery URL points at
func (c *Cloudinary) Destroy(ctx context.Context, url string) error {
	publicID := PublicIDFromURL(url)
	if publicID == "" {
		return fmt.Errorf("no public id in url %q", url)
	}
	res, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return err
	}
	if res.Result != "ok" {
		return fmt.Errorf("destroy %q: %s", publicID, res.Result)
	}
	return nil
}

// List returns every uploaded image whose public ID starts with the prefix
func (c *Cloudinary) List(ctx context.Context, prefix string) ([]Asset, error) {
	var assets []Asset
	cursor := ""
	for {
		res, err := c.cld.Admin.Assets(ctx, admin.AssetsParams{
			AssetType:    api.Image,
			DeliveryType: "upload",
			Prefix:       prefix,
			MaxResults:   500,
			NextCursor:   cursor,
		})
		if err != nil {
			return nil, err
		}
		for _, a := range res.Assets {
			assets = append(assets, Asset{
				PublicID:  a.PublicID,
				SecureURL: a.SecureURL,
				CreatedAt: a.CreatedAt,
			})
		}
		if res.NextCursor == "" {
			break
		}
		cursor = res.NextCursor
	}
	return assets, nil
}

// PublicIDFromURL recovers the folder-qualified public ID from a delivery URL,
// e.g. ".../image/upload/v1700000000/rental/cars/abc.jpg" -> "rental/cars/abc".
// Returns "" when the URL does not look like an upload delivery URL.
func PublicIDFromURL(url string) string {
	_, rest, found := strings.Cut(url, "/upload/")
	if !found {
		return ""
	}
	rest = strings.SplitN(rest, "?", 2)[0]

	segments := strings.Split(rest, "/")
	if len(segments) > 0 && isVersionSegment(segments[0]) {
		segments = segments[1:]
	}
	if len(segments) == 0 {
		return ""
	}

	publicID := strings.Join(segments, "/")
	if i := strings.LastIndex(publicID, "."); i > strings.LastIndex(publicID, "/") {
		publicID = publicID[:i]
	}
	return publicID
}

func isVersionSegment(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
