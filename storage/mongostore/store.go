// Package mongostore persists items and admins in MongoDB, using the same
// collections and field names as the original Node service.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"time"

	"github.com/JuzzThyne/ERI-backend/admin"
	"github.com/JuzzThyne/ERI-backend/catalog"
	"github.com/JuzzThyne/ERI-backend/models"
	"github.com/JuzzThyne/ERI-backend/obs"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	itemsCollection  = "items"
	adminsCollection = "users"
)

type itemDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	PhotoURLs []string           `bson:"itemPhotoUrls"`
	Name      string             `bson:"itemName"`
	Price     float64            `bson:"itemPrice"`
	CreatedAt time.Time          `bson:"createdAt,omitempty"`
	UpdatedAt time.Time          `bson:"updatedAt,omitempty"`
}

type adminDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	AdminName string             `bson:"adminName"`
	Username  string             `bson:"username"`
	Password  string             `bson:"password"`
	AdminType string             `bson:"adminType"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

type Store struct {
	client *mongo.Client
	items  *mongo.Collection
	admins *mongo.Collection
}

var (
	_ catalog.Store = (*Store)(nil)
	_ admin.Store   = (*Store)(nil)
)

// Connect dials uri, checks the connection and ensures the unique indexes.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	db := client.Database(database)
	s := &Store{
		client: client,
		items:  db.Collection(itemsCollection),
		admins: db.Collection(adminsCollection),
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)
	if _, err := s.items.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "itemName", Value: 1}},
		Options: unique,
	}); err != nil {
		return fmt.Errorf("item name index: %w", err)
	}
	if _, err := s.admins.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: unique,
	}); err != nil {
		return fmt.Errorf("username index: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func toItem(d itemDoc) models.Item {
	var price models.Price
	if math.IsInf(d.Price, 0) || math.IsNaN(d.Price) {
		obs.Logger.Warn("item_price_not_finite", "item_id", d.ID.Hex(), "price", fmt.Sprint(d.Price))
	} else {
		price = models.PriceFromFloat(d.Price)
	}
	return models.Item{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		PhotoURLs: d.PhotoURLs,
		Price:     price,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// itemFilter matches names containing the term literally, ignoring case.
func itemFilter(f catalog.Filter) bson.M {
	if f.NameContains == "" {
		return bson.M{}
	}
	return bson.M{"itemName": primitive.Regex{Pattern: regexp.QuoteMeta(f.NameContains), Options: "i"}}
}

func findOptions(opts catalog.FindOptions) *options.FindOptions {
	dir := 1
	if opts.Sort == catalog.SortDescending {
		dir = -1
	}
	fo := options.Find().
		SetSort(bson.D{{Key: "itemName", Value: dir}}).
		SetSkip(int64(opts.Skip)).
		SetProjection(bson.M{"itemPhotoUrls": 1, "itemName": 1, "itemPrice": 1})
	if opts.Limit > 0 {
		fo.SetLimit(int64(opts.Limit))
	}
	return fo
}

// objectID maps malformed ids to ErrNotFound; they can never match.
func objectID(id string, notFound error) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, notFound
	}
	return oid, nil
}

func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	n, err := s.items.CountDocuments(ctx, bson.M{"itemName": name}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) Create(ctx context.Context, item *models.Item) error {
	now := time.Now().UTC()
	doc := itemDoc{
		ID:        primitive.NewObjectID(),
		PhotoURLs: item.PhotoURLs,
		Name:      item.Name,
		Price:     item.Price.Float64(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.items.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return catalog.ErrDuplicateName
		}
		return err
	}
	item.ID = doc.ID.Hex()
	item.CreatedAt = now
	item.UpdatedAt = now
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*models.Item, error) {
	oid, err := objectID(id, catalog.ErrNotFound)
	if err != nil {
		return nil, err
	}
	var doc itemDoc
	if err := s.items.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, catalog.ErrNotFound
		}
		return nil, err
	}
	it := toItem(doc)
	return &it, nil
}

func (s *Store) Update(ctx context.Context, item *models.Item) error {
	oid, err := objectID(item.ID, catalog.ErrNotFound)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	res, err := s.items.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"itemName":      item.Name,
		"itemPhotoUrls": item.PhotoURLs,
		"itemPrice":     item.Price.Float64(),
		"updatedAt":     now,
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return catalog.ErrDuplicateName
		}
		return err
	}
	if res.MatchedCount == 0 {
		return catalog.ErrNotFound
	}
	item.UpdatedAt = now
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id, catalog.ErrNotFound)
	if err != nil {
		return err
	}
	res, err := s.items.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (s *Store) Count(ctx context.Context, f catalog.Filter) (int64, error) {
	return s.items.CountDocuments(ctx, itemFilter(f))
}

func (s *Store) Find(ctx context.Context, f catalog.Filter, opts catalog.FindOptions) ([]models.Item, error) {
	cur, err := s.items.Find(ctx, itemFilter(f), findOptions(opts))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Item{}
	for cur.Next(ctx) {
		var doc itemDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, toItem(doc))
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func toAdmin(d adminDoc) *models.Admin {
	return &models.Admin{
		ID:           d.ID.Hex(),
		AdminName:    d.AdminName,
		Username:     d.Username,
		PasswordHash: d.Password,
		AdminType:    d.AdminType,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (s *Store) findAdmin(ctx context.Context, filter bson.M) (*models.Admin, error) {
	var doc adminDoc
	if err := s.admins.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, admin.ErrNotFound
		}
		return nil, err
	}
	return toAdmin(doc), nil
}

func (s *Store) AdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	return s.findAdmin(ctx, bson.M{"username": username})
}

func (s *Store) AdminByID(ctx context.Context, id string) (*models.Admin, error) {
	oid, err := objectID(id, admin.ErrNotFound)
	if err != nil {
		return nil, err
	}
	return s.findAdmin(ctx, bson.M{"_id": oid})
}

func (s *Store) CreateAdmin(ctx context.Context, a *models.Admin) error {
	now := time.Now().UTC()
	doc := adminDoc{
		ID:        primitive.NewObjectID(),
		AdminName: a.AdminName,
		Username:  a.Username,
		Password:  a.PasswordHash,
		AdminType: a.AdminType,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.admins.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return admin.ErrUsernameTaken
		}
		return err
	}
	a.ID = doc.ID.Hex()
	a.CreatedAt = now
	a.UpdatedAt = now
	return nil
}
