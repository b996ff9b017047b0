package catalog

import (
	"fmt"
	"strings"

	"github.com/JuzzThyne/ERI-backend/models"

	"github.com/shopspring/decimal"
)

// MaxPriceDigits is the number of integer digits a price may have. Every
// backend stores prices as decimal(12,2) or an equivalent.
const MaxPriceDigits = 10

var priceLimit = decimal.New(1, MaxPriceDigits)

// integerDigits is the number of digits left of the decimal point, computed
// from the mantissa so huge exponents are never expanded.
func integerDigits(d decimal.Decimal) int {
	return d.NumDigits() + int(d.Exponent())
}

// NormalizePrice parses raw as a decimal and rounds it to two digits.
// Unparsable, negative or too large input fails with ErrInvalidPrice.
func NormalizePrice(raw string) (models.Price, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return models.Price{}, ErrInvalidPrice
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return models.Price{}, fmt.Errorf("%w: %q", ErrInvalidPrice, raw)
	}
	switch {
	case d.IsZero():
		d = decimal.Zero
	case integerDigits(d) > MaxPriceDigits:
		return models.Price{}, fmt.Errorf("%w: more than %d integer digits", ErrInvalidPrice, MaxPriceDigits)
	case integerDigits(d) < -2:
		// Below 0.001, which rounds to zero.
		d = decimal.Zero
	}
	p := models.NewPrice(d)
	if p.Decimal().GreaterThanOrEqual(priceLimit) {
		return models.Price{}, fmt.Errorf("%w: more than %d integer digits", ErrInvalidPrice, MaxPriceDigits)
	}
	return p, nil
}

// NormalizeName trims raw and rejects an empty result.
func NormalizeName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", ErrInvalidName
	}
	return name, nil
}

// NormalizeItem builds the canonical record for a new item.
func NormalizeItem(name, price string, photoURLs []string) (*models.Item, error) {
	n, err := NormalizeName(name)
	if err != nil {
		return nil, err
	}
	p, err := NormalizePrice(price)
	if err != nil {
		return nil, err
	}
	if len(photoURLs) == 0 {
		return nil, ErrNoImage
	}
	urls := make([]string, len(photoURLs))
	copy(urls, photoURLs)
	return &models.Item{Name: n, Price: p, PhotoURLs: urls}, nil
}
