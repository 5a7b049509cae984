package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dwikikusuma/ubermelon/internal/catalog/app"
	"github.com/dwikikusuma/ubermelon/internal/catalog/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type productRow struct {
	ID          string          `gorm:"primaryKey"`
	Name        string          `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Description string
	ImageURL    string
	// Position keeps the seed file order so both stores list alike.
	Position  int `gorm:"not null;default:0;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (productRow) TableName() string {
	return "products"
}

type ProductRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

func (r *ProductRepo) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&productRow{})
}

// Seed upserts products by id, overwriting every column but the id. The
// slice order becomes the listing order.
func (r *ProductRepo) Seed(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	rows := make([]productRow, 0, len(products))
	for i, p := range products {
		row := toRow(p)
		row.Position = i
		rows = append(rows, row)
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "price", "description", "image_url", "position", "updated_at"}),
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	return nil
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	var row productRow
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Product{}, fmt.Errorf("product %q: %w", id, app.ErrNotFound)
	}
	if err != nil {
		return domain.Product{}, err
	}

	return toDomain(row), nil
}

// List returns products in seed order.
func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	var rows []productRow
	if err := r.db.WithContext(ctx).Order("position ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomain(row))
	}
	return out, nil
}

func toRow(p domain.Product) productRow {
	return productRow{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		ImageURL:    p.ImageURL,
	}
}

func toDomain(row productRow) domain.Product {
	return domain.Product{
		ID:          row.ID,
		Name:        row.Name,
		Price:       row.Price,
		Description: row.Description,
		ImageURL:    row.ImageURL,
	}
}
