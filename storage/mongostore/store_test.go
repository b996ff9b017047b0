package mongostore

import (
	"errors"
	"math"
	"regexp"
	"testing"

	"github.com/JuzzThyne/ERI-backend/catalog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestItemFilterEmptyMatchesAll(t *testing.T) {
	if f := itemFilter(catalog.Filter{}); len(f) != 0 {
		t.Fatalf("expected empty filter, got %v", f)
	}
}

func TestItemFilterQuotesTerm(t *testing.T) {
	f := itemFilter(catalog.Filter{NameContains: "a.b(c"})
	re, ok := f["itemName"].(primitive.Regex)
	if !ok {
		t.Fatalf("expected regex, got %T", f["itemName"])
	}
	if re.Options != "i" {
		t.Fatalf("expected case-insensitive option, got %q", re.Options)
	}
	compiled := regexp.MustCompile("(?i)" + re.Pattern)
	if !compiled.MatchString("xA.B(Cx") {
		t.Fatalf("literal term should match")
	}
	if compiled.MatchString("axbyc") {
		t.Fatalf("metacharacters must be literal")
	}
}

func TestFindOptions(t *testing.T) {
	fo := findOptions(catalog.FindOptions{Skip: 20, Limit: 10, Sort: catalog.SortDescending})
	if fo.Skip == nil || *fo.Skip != 20 {
		t.Fatalf("skip got %v", fo.Skip)
	}
	if fo.Limit == nil || *fo.Limit != 10 {
		t.Fatalf("limit got %v", fo.Limit)
	}
	sort, ok := fo.Sort.(bson.D)
	if !ok || len(sort) != 1 || sort[0].Key != "itemName" || sort[0].Value != -1 {
		t.Fatalf("unexpected sort %v", fo.Sort)
	}
	proj, ok := fo.Projection.(bson.M)
	if !ok {
		t.Fatalf("unexpected projection %T", fo.Projection)
	}
	if _, has := proj["createdAt"]; has {
		t.Fatalf("timestamps must not be projected")
	}
	if len(proj) != 3 {
		t.Fatalf("expected three projected fields, got %v", proj)
	}
}

func TestToItemRoundsPrice(t *testing.T) {
	oid := primitive.NewObjectID()
	it := toItem(itemDoc{ID: oid, Name: "Kiwi", PhotoURLs: []string{"u"}, Price: 9.999})
	if it.ID != oid.Hex() || it.Price.String() != "10.00" {
		t.Fatalf("unexpected item %+v (price %s)", it, it.Price)
	}
}

func TestToItemNonFinitePrice(t *testing.T) {
	for _, f := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		it := toItem(itemDoc{ID: primitive.NewObjectID(), Name: "Broken", Price: f})
		if !it.Price.IsZero() || it.Name != "Broken" {
			t.Fatalf("price %v: unexpected item %+v", f, it)
		}
	}
}

func TestObjectIDMalformedIsNotFound(t *testing.T) {
	if _, err := objectID("not-hex", catalog.ErrNotFound); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	oid := primitive.NewObjectID()
	got, err := objectID(oid.Hex(), catalog.ErrNotFound)
	if err != nil || got != oid {
		t.Fatalf("round trip failed: %v", err)
	}
}
