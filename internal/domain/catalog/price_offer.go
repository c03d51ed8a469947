package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// PriceOffer is a tiered price/quantity bundle attached to a product,
// e.g. "3 for 60000". Offers are stored structured end-to-end; display
// strings like "3 قطعة - 60000" are rendered by clients, never persisted.
type PriceOffer struct {
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Label     string          `json:"label"`
	IsDefault bool            `json:"is_default,omitempty"`
}

// Validate checks the offer's own fields
func (o PriceOffer) Validate() error {
	if o.Quantity <= 0 {
		return fmt.Errorf("offer %q: quantity must be positive", o.Label)
	}
	if !o.Price.IsPositive() {
		return fmt.Errorf("offer %q: price must be positive", o.Label)
	}
	if o.Label == "" {
		return errors.New("offer label cannot be empty")
	}
	return nil
}

// PriceOffers is the set of offers on a product, persisted as a jsonb column
type PriceOffers []PriceOffer

// Validate checks all offers: each valid on its own, labels unique,
// at most one marked default.
func (offers PriceOffers) Validate() error {
	seen := make(map[string]struct{}, len(offers))
	defaults := 0
	for _, o := range offers {
		if err := o.Validate(); err != nil {
			return err
		}
		if _, dup := seen[o.Label]; dup {
			return fmt.Errorf("duplicate offer label %q", o.Label)
		}
		seen[o.Label] = struct{}{}
		if o.IsDefault {
			defaults++
		}
	}
	if defaults > 1 {
		return errors.New("at most one offer can be the default")
	}
	return nil
}

// Find returns the offer with the exact label, if any.
// Matching is exact string comparison; no fuzzy or partial match.
func (offers PriceOffers) Find(label string) (PriceOffer, bool) {
	for _, o := range offers {
		if o.Label == label {
			return o, true
		}
	}
	return PriceOffer{}, false
}

// Default returns the offer marked as default, if any
func (offers PriceOffers) Default() (PriceOffer, bool) {
	for _, o := range offers {
		if o.IsDefault {
			return o, true
		}
	}
	return PriceOffer{}, false
}

// Value implements driver.Valuer for jsonb storage
func (offers PriceOffers) Value() (driver.Value, error) {
	if offers == nil {
		return "[]", nil
	}
	data, err := json.Marshal(offers)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for jsonb storage.
// Malformed stored data yields an empty set rather than an error so a bad
// row degrades to base-price resolution instead of failing reads.
func (offers *PriceOffers) Scan(value interface{}) error {
	if value == nil {
		*offers = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into PriceOffers", value)
	}
	if len(data) == 0 {
		*offers = nil
		return nil
	}
	var parsed PriceOffers
	if err := json.Unmarshal(data, &parsed); err != nil {
		*offers = nil
		return nil
	}
	*offers = parsed
	return nil
}

// ResolvedPrice is the outcome of price resolution for one order line
type ResolvedPrice struct {
	UnitPrice decimal.Decimal
	Quantity  int
	Offer     *PriceOffer // nil when resolved from the base price
}

// LineTotal returns the total for the resolved line.
// An offer price is the bundle price, not a per-unit price.
func (r ResolvedPrice) LineTotal() decimal.Decimal {
	if r.Offer != nil {
		return r.UnitPrice
	}
	return r.UnitPrice.Mul(decimal.NewFromInt(int64(r.Quantity)))
}

// ResolvePrice determines the unit price and implied quantity for an order
// line on this product. A non-empty offer label that exactly matches one of
// the product's offers yields that offer's price and quantity; otherwise the
// base price with quantity 1.
func (p *Product) ResolvePrice(offerLabel string) ResolvedPrice {
	if offerLabel != "" {
		if offer, ok := p.PriceOffers.Find(offerLabel); ok {
			return ResolvedPrice{
				UnitPrice: offer.Price,
				Quantity:  offer.Quantity,
				Offer:     &offer,
			}
		}
	}
	return ResolvedPrice{
		UnitPrice: p.Price,
		Quantity:  1,
	}
}
