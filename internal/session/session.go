// Package session keeps per-browser shop state in a signed cookie.
//
// The cookie carries an HS256 JWT whose claims hold the cart, the email of
// the logged-in customer and flash messages waiting to be shown. Handlers
// receive a Session value, change it, and hand it back to the Store to be
// written. Nothing is kept server side.
package session

import (
	"errors"

	cart "github.com/dwikikusuma/ubermelon/internal/cart/domain"
)

var (
	ErrInvalidSession = errors.New("invalid session")
	ErrTooLarge       = errors.New("session too large for cookie")
)

type Session struct {
	ID      string
	Cart    cart.Cart
	Email   string
	Flashes []string
}

func (s *Session) AddFlash(msg string) {
	s.Flashes = append(s.Flashes, msg)
}

// PopFlashes returns pending flashes and clears them.
func (s *Session) PopFlashes() []string {
	out := s.Flashes
	s.Flashes = nil
	return out
}

func (s *Session) LoggedIn() bool {
	return s.Email != ""
}
