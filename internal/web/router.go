package web

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine serving every shop route.
func NewRouter(h *Handler) (*gin.Engine, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(requestLogger(h.log), recovery(h.log))

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/readyz", func(c *gin.Context) { c.Status(http.StatusOK) })

	shop := r.Group("/", h.loadSession)
	{
		shop.GET("/", h.home)
		shop.GET("/melons", h.listMelons)
		shop.GET("/melon/:id", h.showMelon)

		shop.GET("/cart", h.showCart)
		shop.GET("/add_to_cart/:id", h.addToCart)
		shop.POST("/add_to_cart/:id", h.addToCart)

		shop.GET("/login", h.showLogin)
		shop.POST("/login", h.processLogin)

		shop.GET("/checkout", h.checkoutCart)
	}

	return r, nil
}
