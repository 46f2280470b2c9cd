package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/sunridge-rentals/rental-api/media"
)

const maxUploadSize = 32 << 20

type fieldKind int

const (
	textField fieldKind = iota
	numberField
	boolField
	jsonField
)

type formField struct {
	name string
	kind fieldKind
}

// buildUpdateSet copies present form fields into a $set document. Absent
// fields are skipped so the stored value survives a partial update. JSON
// fields (arrays and maps) are parsed and replace the stored value wholesale.
func buildUpdateSet(form url.Values, fields []formField) (bson.M, error) {
	set := bson.M{}
	for _, f := range fields {
		vs, ok := form[f.name]
		if !ok || len(vs) == 0 {
			continue
		}
		raw := vs[0]
		switch f.kind {
		case numberField:
			n, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", f.name, err)
			}
			set[f.name] = n
		case boolField:
			set[f.name] = raw == "true"
		case jsonField:
			var v interface{}
			if err := json.Unmarshal([]byte(raw), &v); err != nil {
				return nil, fmt.Errorf("field %s: %w", f.name, err)
			}
			set[f.name] = v
		default:
			set[f.name] = raw
		}
	}
	return set, nil
}

// replaceImage uploads a newly submitted file for the given form field and
// best-effort deletes the previous asset. Returns the new URL and whether a
// file was present; a missing or empty file is not an error.
func replaceImage(ctx context.Context, m media.Uploader, r *http.Request, field, folder, oldURL string) (string, bool, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", false, nil
	}
	defer file.Close()
	if header.Size == 0 {
		return "", false, nil
	}

	if oldURL != "" {
		if derr := m.Destroy(ctx, oldURL); derr != nil {
			zap.S().Warnw("failed to delete previous image",
				"url", oldURL,
				"error", derr)
		}
	}

	newURL, err := m.Upload(ctx, file, folder)
	if err != nil {
		return "", false, err
	}
	return newURL, true, nil
}

// destroyImage deletes a stored asset, logging instead of failing. A stale or
// already-deleted remote image must never block a data-level operation.
func destroyImage(ctx context.Context, m media.Uploader, imageURL string) {
	if imageURL == "" {
		return
	}
	if err := m.Destroy(ctx, imageURL); err != nil {
		zap.S().Warnw("failed to delete image",
			"url", imageURL,
			"error", err)
	}
}
