// Package catalog holds the item write/read pipeline: normalization,
// image upload coordination, uniqueness checks and paginated search.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/JuzzThyne/ERI-backend/models"
)

// NewItem is an add-item request before normalization.
type NewItem struct {
	Name   string
	Price  string
	Images []ImageFile
}

// ItemPatch is a partial update. An empty name, an empty or zero price and an
// empty photo list all keep the stored value, so a field cannot be cleared.
type ItemPatch struct {
	Name      string
	Price     string
	PhotoURLs []string
}

type Service struct {
	store   Store
	uploads *Coordinator
}

func NewService(store Store, uploads *Coordinator) *Service {
	return &Service{store: store, uploads: uploads}
}

// Create validates the text fields, uploads every image and inserts the item.
// Nothing is persisted unless all uploads succeed.
func (s *Service) Create(ctx context.Context, in NewItem) (*models.Item, error) {
	name, err := NormalizeName(in.Name)
	if err != nil {
		return nil, err
	}
	price, err := NormalizePrice(in.Price)
	if err != nil {
		return nil, err
	}
	if len(in.Images) == 0 {
		return nil, ErrNoImage
	}
	// Checked before uploading and again right before the insert.
	if err := s.ensureNameFree(ctx, name); err != nil {
		return nil, err
	}

	urls, err := s.uploads.UploadAll(ctx, in.Images)
	if err != nil {
		return nil, err
	}

	item, err := NormalizeItem(name, price.String(), urls)
	if err != nil {
		return nil, err
	}
	if err := s.insert(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// insert runs the exists check and the insert as two separate store calls.
// Concurrent creates of one name can both pass the check; the store's unique
// constraint decides the loser.
func (s *Service) insert(ctx context.Context, item *models.Item) error {
	if err := s.ensureNameFree(ctx, item.Name); err != nil {
		return err
	}
	if err := s.store.Create(ctx, item); err != nil {
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

func (s *Service) ensureNameFree(ctx context.Context, name string) error {
	exists, err := s.store.Exists(ctx, name)
	if err != nil {
		return fmt.Errorf("check item name: %w", err)
	}
	if exists {
		return ErrDuplicateName
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Item, error) {
	return s.store.Get(ctx, id)
}

// Update merges patch over the stored item.
func (s *Service) Update(ctx context.Context, id string, patch ItemPatch) (*models.Item, error) {
	item, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(patch.Price) != "" {
		price, err := NormalizePrice(patch.Price)
		if err != nil {
			return nil, err
		}
		if !price.IsZero() {
			item.Price = price
		}
	}

	var urls []string
	for _, u := range patch.PhotoURLs {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	if len(urls) > 0 {
		item.PhotoURLs = urls
	}

	if name := strings.TrimSpace(patch.Name); name != "" && name != item.Name {
		if err := s.ensureNameFree(ctx, name); err != nil {
			return nil, err
		}
		item.Name = name
	}

	if err := s.store.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	return item, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// Search counts the matching items and returns one sorted page of them.
// A page past the end is empty, not an error.
func (s *Service) Search(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	q = q.withDefaults()
	f := q.filter()

	total, err := s.store.Count(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("count items: %w", err)
	}
	items := []models.Item{}
	if opts, ok := q.window(); ok && int64(opts.Skip) < total {
		items, err = s.store.Find(ctx, f, opts)
		if err != nil {
			return nil, fmt.Errorf("find items: %w", err)
		}
	}

	summaries := summarize(items)
	return &SearchResult{
		Items:      summaries,
		Count:      len(summaries),
		Page:       q.Page,
		TotalPages: TotalPages(total, q.PageSize),
		Total:      total,
	}, nil
}
