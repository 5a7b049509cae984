package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	cartapp "github.com/dwikikusuma/ubermelon/internal/cart/app"
	catalogapp "github.com/dwikikusuma/ubermelon/internal/catalog/app"
	checkoutapp "github.com/dwikikusuma/ubermelon/internal/checkout/app"
	customerapp "github.com/dwikikusuma/ubermelon/internal/customer/app"
	"github.com/dwikikusuma/ubermelon/internal/session"
	"github.com/gin-gonic/gin"
)

const msgAdded = "Melon added to cart!"

type SessionStore interface {
	Load(r *http.Request) session.Session
	Save(w http.ResponseWriter, sess session.Session) error
}

type Handler struct {
	catalog   *catalogapp.Service
	cart      *cartapp.Service
	customers *customerapp.Service
	checkout  *checkoutapp.Service
	sessions  SessionStore
	log       *slog.Logger
}

type Deps struct {
	Catalog   *catalogapp.Service
	Cart      *cartapp.Service
	Customers *customerapp.Service
	Checkout  *checkoutapp.Service
	Sessions  SessionStore
	Log       *slog.Logger
}

func NewHandler(d Deps) *Handler {
	log := d.Log
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		catalog:   d.Catalog,
		cart:      d.Cart,
		customers: d.Customers,
		checkout:  d.Checkout,
		sessions:  d.Sessions,
		log:       log,
	}
}

// GET /
func (h *Handler) home(c *gin.Context) {
	h.render(c, currentSession(c), http.StatusOK, "homepage.html", nil)
}

// GET /melons
func (h *Handler) listMelons(c *gin.Context) {
	sess := currentSession(c)

	melons, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		h.fail(c, sess, err, "/")
		return
	}

	h.render(c, sess, http.StatusOK, "all_melons.html", gin.H{
		"Title":  "Melons",
		"Melons": melons,
	})
}

// GET /melon/:id
func (h *Handler) showMelon(c *gin.Context) {
	sess := currentSession(c)

	melon, err := h.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, sess, err, "/melons")
		return
	}

	h.render(c, sess, http.StatusOK, "melon_details.html", gin.H{
		"Title": melon.Name,
		"Melon": melon,
	})
}

// GET /cart
func (h *Handler) showCart(c *gin.Context) {
	sess := currentSession(c)

	summary, err := h.cart.Summarize(c.Request.Context(), sess.Cart)
	if err != nil {
		h.fail(c, sess, err, "/melons")
		return
	}

	h.render(c, sess, http.StatusOK, "cart.html", gin.H{
		"Title":       "Cart",
		"Lines":       summary.Lines,
		"Total":       summary.Total.StringFixed(2),
		"Unavailable": summary.Unavailable,
		"Rejected":    summary.Rejected,
	})
}

// GET, POST /add_to_cart/:id
func (h *Handler) addToCart(c *gin.Context) {
	sess := currentSession(c)

	updated, err := h.cart.AddItem(sess.Cart, c.Param("id"))
	if err != nil {
		h.fail(c, sess, err, "/melons")
		return
	}

	next := *sess
	next.Cart = updated
	next.Flashes = append(slices.Clone(sess.Flashes), msgAdded)
	if err := h.sessions.Save(c.Writer, next); err != nil {
		h.fail(c, sess, err, "/cart")
		return
	}
	c.Redirect(http.StatusSeeOther, "/cart")
}

// GET /login
func (h *Handler) showLogin(c *gin.Context) {
	h.render(c, currentSession(c), http.StatusOK, "login.html", gin.H{"Title": "Log in"})
}

// POST /login
func (h *Handler) processLogin(c *gin.Context) {
	sess := currentSession(c)

	customer, err := h.customers.Authenticate(c.Request.Context(), c.PostForm("email"), c.PostForm("password"))
	if err != nil {
		h.fail(c, sess, err, "/login")
		return
	}

	sess.Email = customer.Email
	sess.AddFlash(fmt.Sprintf("Logged in as %s.", customer.Email))
	h.redirect(c, sess, "/melons")
}

// GET /checkout
func (h *Handler) checkoutCart(c *gin.Context) {
	sess := currentSession(c)

	notice := h.checkout.Acknowledge(c.Request.Context(), sess.Email, sess.Cart)
	sess.AddFlash(notice.Message)
	h.redirect(c, sess, "/melons")
}
