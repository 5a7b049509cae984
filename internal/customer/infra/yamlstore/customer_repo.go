package yamlstore

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dwikikusuma/ubermelon/internal/customer/app"
	"github.com/dwikikusuma/ubermelon/internal/customer/domain"
	"gopkg.in/yaml.v3"
)

//go:embed customers.yaml
var defaultCustomers string

type customerDoc struct {
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Email     string `yaml:"email"`
	Password  string `yaml:"password"`
}

type CustomerRepo struct {
	byEmail map[string]domain.Customer
}

func Default() (*CustomerRepo, error) {
	return Load(strings.NewReader(defaultCustomers))
}

func Open(path string) (*CustomerRepo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open customers: %w", err)
	}
	defer f.Close()

	return Load(f)
}

func Load(r io.Reader) (*CustomerRepo, error) {
	var doc struct {
		Customers []customerDoc `yaml:"customers"`
	}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode customers: %w", err)
	}

	repo := &CustomerRepo{byEmail: make(map[string]domain.Customer, len(doc.Customers))}
	for i, d := range doc.Customers {
		email := domain.NormalizeEmail(d.Email)
		if email == "" {
			return nil, fmt.Errorf("customer %d: missing email", i)
		}
		if _, dup := repo.byEmail[email]; dup {
			return nil, fmt.Errorf("customer %d: duplicate email %q", i, email)
		}
		repo.byEmail[email] = domain.Customer{
			FirstName: d.FirstName,
			LastName:  d.LastName,
			Email:     email,
			Password:  d.Password,
		}
	}
	return repo, nil
}

func (r *CustomerRepo) GetByEmail(ctx context.Context, email string) (domain.Customer, error) {
	c, ok := r.byEmail[domain.NormalizeEmail(email)]
	if !ok {
		return domain.Customer{}, app.ErrNotFound
	}
	return c, nil
}
