// Package gormstore persists items and admins in a SQL database through gorm.
// Postgres and MySQL are supported.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/JuzzThyne/ERI-backend/admin"
	"github.com/JuzzThyne/ERI-backend/catalog"
	"github.com/JuzzThyne/ERI-backend/models"

	"github.com/oklog/ulid/v2"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type itemRecord struct {
	ID        string       `gorm:"primaryKey;size:26"`
	Name      string       `gorm:"size:255;not null;uniqueIndex"`
	PhotoURLs []string     `gorm:"column:photo_urls;serializer:json;type:text;not null"`
	Price     models.Price `gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (itemRecord) TableName() string { return "items" }

type adminRecord struct {
	ID           string `gorm:"primaryKey;size:26"`
	AdminName    string `gorm:"size:255;not null"`
	Username     string `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string `gorm:"column:password;size:255;not null"`
	AdminType    string `gorm:"size:64;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (adminRecord) TableName() string { return "admins" }

type Store struct {
	db *gorm.DB
}

var (
	_ catalog.Store = (*Store)(nil)
	_ admin.Store   = (*Store)(nil)
)

// OpenPostgres connects with a libpq style DSN or URL and migrates the schema.
func OpenPostgres(dsn string) (*Store, error) {
	return Open(postgres.Open(dsn))
}

// OpenMySQL connects with a go-sql-driver DSN and migrates the schema.
func OpenMySQL(dsn string) (*Store, error) {
	return Open(mysql.Open(dsn))
}

func Open(dialector gorm.Dialector) (*Store, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(&itemRecord{}, &adminRecord{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

func newID() string {
	return ulid.Make().String()
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close(context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func toItem(r itemRecord) models.Item {
	return models.Item{
		ID:        r.ID,
		Name:      r.Name,
		PhotoURLs: r.PhotoURLs,
		Price:     r.Price,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// escapeLike makes term a literal LIKE operand. Backslash is the default
// escape character in both Postgres and MySQL.
func escapeLike(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(term)
}

func filtered(db *gorm.DB, f catalog.Filter) *gorm.DB {
	if f.NameContains == "" {
		return db
	}
	return db.Where("LOWER(name) LIKE ?", "%"+escapeLike(strings.ToLower(f.NameContains))+"%")
}

func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&itemRecord{}).Where("name = ?", name).Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) Create(ctx context.Context, item *models.Item) error {
	now := time.Now().UTC()
	rec := itemRecord{
		ID:        newID(),
		Name:      item.Name,
		PhotoURLs: item.PhotoURLs,
		Price:     item.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return catalog.ErrDuplicateName
		}
		return err
	}
	item.ID = rec.ID
	item.CreatedAt = rec.CreatedAt
	item.UpdatedAt = rec.UpdatedAt
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*models.Item, error) {
	var rec itemRecord
	if err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrNotFound
		}
		return nil, err
	}
	it := toItem(rec)
	return &it, nil
}

func (s *Store) Update(ctx context.Context, item *models.Item) error {
	rec := itemRecord{
		ID:        item.ID,
		Name:      item.Name,
		PhotoURLs: item.PhotoURLs,
		Price:     item.Price,
		UpdatedAt: time.Now().UTC(),
	}
	res := s.db.WithContext(ctx).Model(&rec).
		Select("name", "photo_urls", "price", "updated_at").
		Updates(&rec)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return catalog.ErrDuplicateName
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		// MySQL reports unchanged rows as unaffected.
		if _, err := s.Get(ctx, item.ID); err != nil {
			return err
		}
	}
	item.UpdatedAt = rec.UpdatedAt
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&itemRecord{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (s *Store) Count(ctx context.Context, f catalog.Filter) (int64, error) {
	var n int64
	err := filtered(s.db.WithContext(ctx).Model(&itemRecord{}), f).Count(&n).Error
	return n, err
}

func orderClause(dir catalog.SortDirection) string {
	if dir == catalog.SortDescending {
		return "name DESC"
	}
	return "name ASC"
}

func (s *Store) Find(ctx context.Context, f catalog.Filter, opts catalog.FindOptions) ([]models.Item, error) {
	var recs []itemRecord
	q := filtered(s.db.WithContext(ctx).Model(&itemRecord{}), f).
		Select("id", "name", "photo_urls", "price").
		Order(orderClause(opts.Sort)).
		Offset(opts.Skip)
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if err := q.Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]models.Item, 0, len(recs))
	for _, r := range recs {
		out = append(out, toItem(r))
	}
	return out, nil
}

func toAdmin(r adminRecord) *models.Admin {
	return &models.Admin{
		ID:           r.ID,
		AdminName:    r.AdminName,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		AdminType:    r.AdminType,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func (s *Store) adminWhere(ctx context.Context, query string, arg string) (*models.Admin, error) {
	var rec adminRecord
	if err := s.db.WithContext(ctx).Where(query, arg).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, admin.ErrNotFound
		}
		return nil, err
	}
	return toAdmin(rec), nil
}

func (s *Store) AdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	return s.adminWhere(ctx, "username = ?", username)
}

func (s *Store) AdminByID(ctx context.Context, id string) (*models.Admin, error) {
	return s.adminWhere(ctx, "id = ?", id)
}

func (s *Store) CreateAdmin(ctx context.Context, a *models.Admin) error {
	now := time.Now().UTC()
	rec := adminRecord{
		ID:           newID(),
		AdminName:    a.AdminName,
		Username:     a.Username,
		PasswordHash: a.PasswordHash,
		AdminType:    a.AdminType,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return admin.ErrUsernameTaken
		}
		return err
	}
	a.ID = rec.ID
	a.CreatedAt = rec.CreatedAt
	a.UpdatedAt = rec.UpdatedAt
	return nil
}
