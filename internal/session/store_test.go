package session

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	cart "github.com/dwikikusuma/ubermelon/internal/cart/domain"
	"github.com/dwikikusuma/ubermelon/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, secret string) *CookieStore {
	t.Helper()
	s, err := NewCookieStore(Options{Secret: secret, TTL: time.Hour}, logger.Discard())
	require.NoError(t, err)
	return s
}

func requestWith(cookies ...*http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return r
}

func TestNewCookieStoreRequiresSecret(t *testing.T) {
	_, err := NewCookieStore(Options{}, nil)
	assert.Error(t, err)
}

func TestLoadWithoutCookieStartsFresh(t *testing.T) {
	s := newStore(t, "k")

	sess := s.Load(requestWith())

	assert.NotEmpty(t, sess.ID)
	assert.True(t, sess.Cart.IsEmpty())
	assert.False(t, sess.LoggedIn())
}

func TestSaveThenLoad(t *testing.T) {
	s := newStore(t, "k")
	sess := Session{
		ID:    "abc",
		Cart:  cart.Cart{}.Add("cran").Add("ogen").Add("cran"),
		Email: "katie@example.com",
	}
	sess.AddFlash("Melon added to cart!")

	rec := httptest.NewRecorder()
	require.NoError(t, s.Save(rec, sess))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, DefaultCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, 3600, cookies[0].MaxAge)

	got := s.Load(requestWith(cookies[0]))
	assert.Equal(t, "abc", got.ID)
	assert.Equal(t, sess.Cart.Entries(), got.Cart.Entries())
	assert.Equal(t, "katie@example.com", got.Email)
	assert.Equal(t, []string{"Melon added to cart!"}, got.PopFlashes())
	assert.Empty(t, got.Flashes)
}

func TestSaveRefusesOversizedSession(t *testing.T) {
	s := newStore(t, "k")

	c := cart.Cart{}
	for i := 0; i < 500; i++ {
		c = c.Add(fmt.Sprintf("melon-%03d", i))
	}

	rec := httptest.NewRecorder()
	err := s.Save(rec, Session{ID: "abc", Cart: c})
	require.ErrorIs(t, err, ErrTooLarge)
	assert.Empty(t, rec.Header().Values("Set-Cookie"))
}

func TestDecodeRejectsForeignSignature(t *testing.T) {
	mine := newStore(t, "mine")
	theirs := newStore(t, "theirs")

	token, err := theirs.Encode(Session{ID: "x", Email: "mallory@example.com"})
	require.NoError(t, err)

	_, err = mine.Decode(token)
	require.ErrorIs(t, err, ErrInvalidSession)

	sess := mine.Load(requestWith(&http.Cookie{Name: DefaultCookieName, Value: token}))
	assert.False(t, sess.LoggedIn())
	assert.NotEqual(t, "x", sess.ID)
}

func TestDecodeRejectsExpired(t *testing.T) {
	s := newStore(t, "k")
	issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return issued }

	token, err := s.Encode(Session{ID: "x"})
	require.NoError(t, err)

	s.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = s.Decode(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	s := newStore(t, "k")
	_, err := s.Decode("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestEncodeAssignsID(t *testing.T) {
	s := newStore(t, "k")
	token, err := s.Encode(Session{})
	require.NoError(t, err)

	got, err := s.Decode(token)
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
}
