package app

import (
	"context"
	"log/slog"

	cart "github.com/dwikikusuma/ubermelon/internal/cart/domain"
)

// NotImplementedNotice is shown to shoppers who try to check out.
const NotImplementedNotice = "Sorry! Checkout will be implemented in a future version."

type Notice struct {
	Message string
	// Processed is always false: no order is placed and the cart is kept.
	Processed bool
}

type Service struct {
	log *slog.Logger
}

func NewService(log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{log: log}
}

// Acknowledge records a checkout attempt without processing payment or
// shipping.
func (s *Service) Acknowledge(ctx context.Context, customerEmail string, c cart.Cart) Notice {
	s.log.InfoContext(ctx, "checkout requested",
		slog.Bool("logged_in", customerEmail != ""),
		slog.Int("lines", c.Len()),
		slog.Int("items", c.ItemCount()))

	return Notice{Message: NotImplementedNotice}
}
