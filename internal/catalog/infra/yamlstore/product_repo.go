package yamlstore

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dwikikusuma/ubermelon/internal/catalog/app"
	"github.com/dwikikusuma/ubermelon/internal/catalog/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed melons.yaml
var defaultCatalog string

type productDoc struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Price       string `yaml:"price"`
	Description string `yaml:"description"`
	ImageURL    string `yaml:"image_url"`
}

type catalogDoc struct {
	Products []productDoc `yaml:"products"`
}

// ProductRepo serves the catalog from memory. It is loaded once and never
// changes afterwards, so concurrent reads need no locking.
type ProductRepo struct {
	order []string
	byID  map[string]domain.Product
}

// Default returns the catalog compiled into the binary.
func Default() (*ProductRepo, error) {
	return Load(strings.NewReader(defaultCatalog))
}

func Open(path string) (*ProductRepo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	return Load(f)
}

func Load(r io.Reader) (*ProductRepo, error) {
	var doc catalogDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	repo := &ProductRepo{
		order: make([]string, 0, len(doc.Products)),
		byID:  make(map[string]domain.Product, len(doc.Products)),
	}

	for i, d := range doc.Products {
		id := strings.TrimSpace(d.ID)
		if id == "" {
			return nil, fmt.Errorf("product %d: missing id", i)
		}
		if _, dup := repo.byID[id]; dup {
			return nil, fmt.Errorf("product %d: duplicate id %q", i, id)
		}

		price, err := decimal.NewFromString(strings.TrimSpace(d.Price))
		if err != nil {
			return nil, fmt.Errorf("product %q: price %q: %w", id, d.Price, err)
		}
		if price.IsNegative() {
			return nil, fmt.Errorf("product %q: negative price %s", id, price)
		}

		repo.order = append(repo.order, id)
		repo.byID[id] = domain.Product{
			ID:          id,
			Name:        d.Name,
			Price:       price,
			Description: d.Description,
			ImageURL:    d.ImageURL,
		}
	}

	return repo, nil
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("product %q: %w", id, app.ErrNotFound)
	}
	return p, nil
}

// List returns products in file order.
func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}
