package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dwikikusuma/ubermelon/internal/cart/domain"
	"github.com/shopspring/decimal"
)

// MaxProductIDLen bounds ids accepted by AddItem. The whole cart travels
// in the session cookie.
const MaxProductIDLen = 64

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrProductNotFound = errors.New("product not found")
)

type Service struct {
	catalog CatalogReader
	log     *slog.Logger
}

func NewService(catalog CatalogReader, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		catalog: catalog,
		log:     log,
	}
}

// AddItem returns cart with one more unit of productID. The id is not
// checked against the catalog.
func (s *Service) AddItem(cart domain.Cart, productID string) (domain.Cart, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return cart, ErrInvalidInput
	}
	if len(productID) > MaxProductIDLen {
		return cart, fmt.Errorf("%w: product id longer than %d bytes", ErrInvalidInput, MaxProductIDLen)
	}
	return cart.Add(productID), nil
}

// Summarize prices every cart entry against the catalog.
//
// Entries whose product no longer exists are left out of the lines and
// the total and are reported in Summary.Unavailable. Entries with a
// non-positive quantity are reported in Summary.Rejected. Any other
// catalog failure aborts the whole summary.
func (s *Service) Summarize(ctx context.Context, cart domain.Cart) (domain.Summary, error) {
	entries := cart.Entries()
	summary := domain.Summary{
		Lines: make([]domain.LineItem, 0, len(entries)),
		Total: decimal.Zero,
	}

	for _, e := range entries {
		if e.Quantity <= 0 {
			s.log.WarnContext(ctx, "cart entry rejected",
				slog.String("product_id", e.ProductID),
				slog.Int("quantity", e.Quantity),
				slog.Any("err", domain.ErrInvalidQuantity))
			summary.Rejected = append(summary.Rejected, e)
			continue
		}

		product, err := s.catalog.GetProduct(ctx, e.ProductID)
		if errors.Is(err, ErrProductNotFound) {
			s.log.WarnContext(ctx, "cart references unknown product", slog.String("product_id", e.ProductID))
			summary.Unavailable = append(summary.Unavailable, e.ProductID)
			continue
		}
		if err != nil {
			return domain.Summary{}, fmt.Errorf("failed to get product %s: %w", e.ProductID, err)
		}

		line := domain.NewLineItem(product, e.Quantity)
		summary.Lines = append(summary.Lines, line)
		summary.Total = summary.Total.Add(line.Subtotal)
	}

	return summary, nil
}
