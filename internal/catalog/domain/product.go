package domain

import "github.com/shopspring/decimal"

// Product is a catalog record. It is read-only for the rest of the shop.
type Product struct {
	ID          string
	Name        string
	Price       decimal.Decimal
	Description string
	ImageURL    string
}

// PriceString renders the price in the two-decimal form shown to shoppers.
func (p Product) PriceString() string {
	return "$" + p.Price.StringFixed(2)
}
