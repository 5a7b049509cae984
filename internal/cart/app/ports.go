package app

import (
	"context"

	catalog "github.com/dwikikusuma/ubermelon/internal/catalog/domain"
)

// CatalogReader resolves product ids for pricing. Implementations return
// an error wrapping ErrProductNotFound for ids the catalog does not know.
type CatalogReader interface {
	GetProduct(ctx context.Context, productID string) (catalog.Product, error)
}
