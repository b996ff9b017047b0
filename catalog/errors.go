package catalog

import "errors"

var (
	// Validation
	ErrInvalidName  = errors.New("item name is required")
	ErrInvalidPrice = errors.New("item price must be a non-negative number")
	ErrNoImage      = errors.New("at least one image is required")
	ErrTooManyFiles = errors.New("too many images")

	// Conflicts
	ErrDuplicateName  = errors.New("item already exists")
	ErrUploadConflict = errors.New("image name already exists on the image host")

	ErrNotFound = errors.New("item not found")

	// Upstream
	ErrUploadFailed = errors.New("image upload failed")
)
