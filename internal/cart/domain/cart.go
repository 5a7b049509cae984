package domain

import (
	"encoding/json"
	"errors"

	catalog "github.com/dwikikusuma/ubermelon/internal/catalog/domain"
	"github.com/shopspring/decimal"
)

var ErrInvalidQuantity = errors.New("quantity must be positive")

type Entry struct {
	ProductID string `json:"id"`
	Quantity  int    `json:"qty"`
}

// Cart maps product ids to quantities and remembers the order in which
// products were first added. Values are immutable: Add returns a copy.
type Cart struct {
	entries []Entry
}

func New(entries ...Entry) Cart {
	var c Cart
	for _, e := range entries {
		c = c.with(e.ProductID, e.Quantity)
	}
	return c
}

// Add returns a cart with productID's quantity raised by one, or set to
// one when it was absent.
func (c Cart) Add(productID string) Cart {
	return c.with(productID, 1)
}

func (c Cart) with(productID string, delta int) Cart {
	out := Cart{entries: make([]Entry, len(c.entries), len(c.entries)+1)}
	copy(out.entries, c.entries)

	for i := range out.entries {
		if out.entries[i].ProductID == productID {
			out.entries[i].Quantity += delta
			return out
		}
	}

	out.entries = append(out.entries, Entry{ProductID: productID, Quantity: delta})
	return out
}

func (c Cart) Quantity(productID string) int {
	for _, e := range c.entries {
		if e.ProductID == productID {
			return e.Quantity
		}
	}
	return 0
}

// Entries returns a copy of the entries in insertion order.
func (c Cart) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c Cart) Len() int      { return len(c.entries) }
func (c Cart) IsEmpty() bool { return len(c.entries) == 0 }

// ItemCount is the sum of all quantities.
func (c Cart) ItemCount() int {
	n := 0
	for _, e := range c.entries {
		n += e.Quantity
	}
	return n
}

func (c Cart) MarshalJSON() ([]byte, error) {
	if c.entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.entries)
}

// UnmarshalJSON merges repeated ids by summing their quantities.
func (c *Cart) UnmarshalJSON(data []byte) error {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	*c = New(entries...)
	return nil
}

// LineItem is one priced cart entry. It is derived for display and never
// stored.
type LineItem struct {
	Product  catalog.Product
	Quantity int
	Subtotal decimal.Decimal
}

func NewLineItem(p catalog.Product, qty int) LineItem {
	return LineItem{
		Product:  p,
		Quantity: qty,
		Subtotal: p.Price.Mul(decimal.NewFromInt(int64(qty))),
	}
}

type Summary struct {
	Lines []LineItem
	Total decimal.Decimal

	// Unavailable lists ids that no longer resolve in the catalog.
	Unavailable []string
	// Rejected holds entries skipped for a non-positive quantity.
	Rejected []Entry
}

func (s Summary) IsEmpty() bool { return len(s.Lines) == 0 }
