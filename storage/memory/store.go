// Package memory keeps items and admins in process memory. It backs the
// default "memory" driver and the tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/JuzzThyne/ERI-backend/admin"
	"github.com/JuzzThyne/ERI-backend/catalog"
	"github.com/JuzzThyne/ERI-backend/models"

	"github.com/oklog/ulid/v2"
)

type Store struct {
	mu         sync.RWMutex
	items      map[string]models.Item
	itemNames  map[string]string // name -> id
	admins     map[string]models.Admin
	adminUsers map[string]string // username -> id
	now        func() time.Time
}

func New() *Store {
	return &Store{
		items:      make(map[string]models.Item),
		itemNames:  make(map[string]string),
		admins:     make(map[string]models.Admin),
		adminUsers: make(map[string]string),
		now:        time.Now,
	}
}

var (
	_ catalog.Store = (*Store)(nil)
	_ admin.Store   = (*Store)(nil)
)

func newID() string {
	return ulid.Make().String()
}

func cloneItem(it models.Item) models.Item {
	it.PhotoURLs = append([]string(nil), it.PhotoURLs...)
	return it
}

func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

func (s *Store) Close(context.Context) error { return nil }

func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.itemNames[name]
	return ok, nil
}

func (s *Store) Create(ctx context.Context, item *models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.itemNames[item.Name]; ok {
		return catalog.ErrDuplicateName
	}
	now := s.now().UTC()
	item.ID = newID()
	item.CreatedAt = now
	item.UpdatedAt = now
	s.items[item.ID] = cloneItem(*item)
	s.itemNames[item.Name] = item.ID
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.items[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	it = cloneItem(it)
	return &it, nil
}

func (s *Store) Update(ctx context.Context, item *models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.items[item.ID]
	if !ok {
		return catalog.ErrNotFound
	}
	if owner, taken := s.itemNames[item.Name]; taken && owner != item.ID {
		return catalog.ErrDuplicateName
	}
	delete(s.itemNames, old.Name)
	item.CreatedAt = old.CreatedAt
	item.UpdatedAt = s.now().UTC()
	s.items[item.ID] = cloneItem(*item)
	s.itemNames[item.Name] = item.ID
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	if !ok {
		return catalog.ErrNotFound
	}
	delete(s.items, id)
	delete(s.itemNames, it.Name)
	return nil
}

func matches(it models.Item, f catalog.Filter) bool {
	if f.NameContains == "" {
		return true
	}
	return strings.Contains(strings.ToLower(it.Name), strings.ToLower(f.NameContains))
}

func (s *Store) Count(ctx context.Context, f catalog.Filter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, it := range s.items {
		if matches(it, f) {
			n++
		}
	}
	return n, nil
}

func (s *Store) Find(ctx context.Context, f catalog.Filter, opts catalog.FindOptions) ([]models.Item, error) {
	s.mu.RLock()
	var out []models.Item
	for _, it := range s.items {
		if matches(it, f) {
			out = append(out, cloneItem(it))
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if opts.Sort == catalog.SortDescending {
			return out[i].Name > out[j].Name
		}
		return out[i].Name < out[j].Name
	})

	if opts.Skip < 0 {
		opts.Skip = 0
	}
	if opts.Skip >= len(out) {
		return []models.Item{}, nil
	}
	out = out[opts.Skip:]
	if opts.Limit > 0 && opts.Limit < len(out) {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (s *Store) AdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.adminUsers[username]
	if !ok {
		return nil, admin.ErrNotFound
	}
	a := s.admins[id]
	return &a, nil
}

func (s *Store) AdminByID(ctx context.Context, id string) (*models.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.admins[id]
	if !ok {
		return nil, admin.ErrNotFound
	}
	return &a, nil
}

func (s *Store) CreateAdmin(ctx context.Context, a *models.Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.adminUsers[a.Username]; ok {
		return admin.ErrUsernameTaken
	}
	now := s.now().UTC()
	a.ID = newID()
	a.CreatedAt = now
	a.UpdatedAt = now
	s.admins[a.ID] = *a
	s.adminUsers[a.Username] = a.ID
	return nil
}
