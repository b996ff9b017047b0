package catalog

import (
	"context"

	"github.com/JuzzThyne/ERI-backend/models"
)

// Filter selects items. An empty NameContains matches everything.
type Filter struct {
	// NameContains is a literal, case-insensitive substring of the name.
	NameContains string
}

type SortDirection int

const (
	SortAscending SortDirection = iota
	SortDescending
)

// FindOptions is the page window and ordering, always by name.
type FindOptions struct {
	Skip  int
	Limit int
	Sort  SortDirection
}

// Store persists items. Implementations must hold a unique constraint on the
// name and report its violation as ErrDuplicateName, and report unknown ids
// as ErrNotFound.
type Store interface {
	Exists(ctx context.Context, name string) (bool, error)
	// Create assigns ID, CreatedAt and UpdatedAt.
	Create(ctx context.Context, item *models.Item) error
	Get(ctx context.Context, id string) (*models.Item, error)
	// Update replaces name, photos and price and refreshes UpdatedAt.
	Update(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, f Filter) (int64, error)
	Find(ctx context.Context, f Filter, opts FindOptions) ([]models.Item, error)
}
