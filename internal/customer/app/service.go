package app

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"

	"github.com/dwikikusuma/ubermelon/internal/customer/domain"
)

var (
	ErrNotFound = errors.New("customer not found")
	// ErrAuthFailed covers both an unknown email and a wrong password.
	ErrAuthFailed = errors.New("incorrect email or password")
)

type Service struct {
	repo CustomerRepo
	log  *slog.Logger
}

func NewService(repo CustomerRepo, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{repo: repo, log: log}
}

// Authenticate returns the customer whose credentials match.
func (s *Service) Authenticate(ctx context.Context, email, password string) (domain.Customer, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return domain.Customer{}, ErrAuthFailed
	}

	c, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		s.log.InfoContext(ctx, "login failed", slog.String("reason", "unknown email"))
		return domain.Customer{}, ErrAuthFailed
	}
	if err != nil {
		return domain.Customer{}, err
	}

	if subtle.ConstantTimeCompare([]byte(c.Password), []byte(password)) != 1 {
		s.log.InfoContext(ctx, "login failed", slog.String("reason", "password mismatch"))
		return domain.Customer{}, ErrAuthFailed
	}

	return c, nil
}
