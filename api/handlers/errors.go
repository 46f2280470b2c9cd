package handlers

import "errors"

var (
	errMissingField  = errors.New("missing required field")
	errDuplicateSlug = errors.New("slug already in use")
	errCategoryInUse = errors.New("category is referenced by existing cars")
	errInvalidRating = errors.New("rating out of range")
)
