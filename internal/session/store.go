package session

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	cart "github.com/dwikikusuma/ubermelon/internal/cart/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const DefaultCookieName = "ubermelon_session"

// MaxCookieBytes caps the cookie name plus value. Browsers drop cookies
// past about 4096 bytes including attributes.
const MaxCookieBytes = 3800

type claims struct {
	Cart    cart.Cart `json:"cart"`
	Email   string    `json:"email,omitempty"`
	Flashes []string  `json:"flashes,omitempty"`
	jwt.RegisteredClaims
}

type Options struct {
	Secret     string
	TTL        time.Duration
	CookieName string
	Secure     bool
}

type CookieStore struct {
	secret []byte
	ttl    time.Duration
	name   string
	secure bool
	log    *slog.Logger
	now    func() time.Time
}

func NewCookieStore(opts Options, log *slog.Logger) (*CookieStore, error) {
	if opts.Secret == "" {
		return nil, errors.New("session secret is required")
	}
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	if opts.CookieName == "" {
		opts.CookieName = DefaultCookieName
	}
	if log == nil {
		log = slog.Default()
	}

	return &CookieStore{
		secret: []byte(opts.Secret),
		ttl:    opts.TTL,
		name:   opts.CookieName,
		secure: opts.Secure,
		log:    log,
		now:    time.Now,
	}, nil
}

func (s *CookieStore) CookieName() string { return s.name }

// Load returns the session carried by the request. A missing, expired or
// tampered cookie yields a fresh session.
func (s *CookieStore) Load(r *http.Request) Session {
	c, err := r.Cookie(s.name)
	if err != nil {
		return s.fresh()
	}

	sess, err := s.Decode(c.Value)
	if err != nil {
		s.log.WarnContext(r.Context(), "discarding session cookie", slog.Any("err", err))
		return s.fresh()
	}
	return sess
}

// Save writes the session as a cookie. Every save extends the expiry.
// A session that would not fit in a cookie is not written and ErrTooLarge
// is returned, so the browser keeps its previous cookie.
func (s *CookieStore) Save(w http.ResponseWriter, sess Session) error {
	token, err := s.Encode(sess)
	if err != nil {
		return err
	}
	if n := len(s.name) + 1 + len(token); n > MaxCookieBytes {
		return fmt.Errorf("%w: %d bytes", ErrTooLarge, n)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *CookieStore) Encode(sess Session) (string, error) {
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	now := s.now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Cart:    sess.Cart,
		Email:   sess.Email,
		Flashes: sess.Flashes,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sess.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return signed, nil
}

func (s *CookieStore) Decode(raw string) (Session, error) {
	var c claims
	_, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if c.ID == "" {
		return Session{}, fmt.Errorf("%w: missing id", ErrInvalidSession)
	}

	return Session{
		ID:      c.ID,
		Cart:    c.Cart,
		Email:   c.Email,
		Flashes: c.Flashes,
	}, nil
}

func (s *CookieStore) fresh() Session {
	return Session{ID: uuid.NewString()}
}
