package models

import (
	"database/sql/driver"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Price is an amount held at exactly two fractional digits.
type Price struct {
	d decimal.Decimal
}

// NewPrice rounds d half away from zero to two digits.
func NewPrice(d decimal.Decimal) Price {
	return Price{d: d.Round(2)}
}

// PriceFromFloat converts a stored floating point amount back to a Price.
func PriceFromFloat(f float64) Price {
	return NewPrice(decimal.NewFromFloat(f))
}

func (p Price) Decimal() decimal.Decimal { return p.d }

func (p Price) String() string { return p.d.StringFixed(2) }

func (p Price) IsZero() bool { return p.d.IsZero() }

func (p Price) IsNegative() bool { return p.d.IsNegative() }

func (p Price) Float64() float64 { return p.d.InexactFloat64() }

func (p Price) Equal(o Price) bool { return p.d.Equal(o.d) }

// MarshalJSON writes a bare number with two digits, e.g. 10.00.
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.String()), nil
}

// Value stores the fixed two digit text so decimal columns keep the exact amount.
func (p Price) Value() (driver.Value, error) {
	return p.String(), nil
}

func (p *Price) Scan(src interface{}) error {
	var d decimal.Decimal
	if err := d.Scan(src); err != nil {
		return err
	}
	*p = NewPrice(d)
	return nil
}

// PriceText holds a price exactly as a client sent it, either a JSON number or a string.
// null and false read as empty.
type PriceText string

func (t *PriceText) UnmarshalJSON(b []byte) error {
	if string(b) == "null" || string(b) == "false" {
		*t = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = PriceText(strings.TrimSpace(s))
		return nil
	}
	*t = PriceText(b)
	return nil
}
