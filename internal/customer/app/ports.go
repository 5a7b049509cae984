package app

import (
	"context"

	"github.com/dwikikusuma/ubermelon/internal/customer/domain"
)

type CustomerRepo interface {
	GetByEmail(ctx context.Context, email string) (domain.Customer, error)
}
