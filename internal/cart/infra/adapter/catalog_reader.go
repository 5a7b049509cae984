package adapter

import (
	"context"
	"errors"
	"fmt"

	cartapp "github.com/dwikikusuma/ubermelon/internal/cart/app"
	catalogapp "github.com/dwikikusuma/ubermelon/internal/catalog/app"
	catalog "github.com/dwikikusuma/ubermelon/internal/catalog/domain"
)

type CatalogServiceReader struct {
	svc *catalogapp.Service
}

func NewCatalogServiceReader(svc *catalogapp.Service) *CatalogServiceReader {
	return &CatalogServiceReader{svc: svc}
}

func (r *CatalogServiceReader) GetProduct(ctx context.Context, productID string) (catalog.Product, error) {
	p, err := r.svc.GetProduct(ctx, productID)
	if errors.Is(err, catalogapp.ErrNotFound) || errors.Is(err, catalogapp.ErrInvalidInput) {
		return catalog.Product{}, fmt.Errorf("%w: %q", cartapp.ErrProductNotFound, productID)
	}
	if err != nil {
		return catalog.Product{}, err
	}

	return p, nil
}
