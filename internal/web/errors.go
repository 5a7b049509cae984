package web

import (
	"errors"
	"log/slog"
	"net/http"

	cartapp "github.com/dwikikusuma/ubermelon/internal/cart/app"
	catalogapp "github.com/dwikikusuma/ubermelon/internal/catalog/app"
	customerapp "github.com/dwikikusuma/ubermelon/internal/customer/app"
	"github.com/dwikikusuma/ubermelon/internal/session"
	"github.com/gin-gonic/gin"
)

const (
	msgUnavailable  = "That melon is no longer available."
	msgBadMelon     = "That melon could not be added to your cart."
	msgLoginFailed  = "Incorrect email or password."
	msgSessionReset = "Your session expired. Please try again."
	msgCartFull     = "Your cart is full."
	msgInternal     = "Something went wrong. Please try again."
)

// userMessage maps an error to the status logged for it and the flash
// shown to the shopper. Messages never echo internal error text.
func userMessage(err error) (int, string) {
	switch {
	case errors.Is(err, catalogapp.ErrNotFound), errors.Is(err, cartapp.ErrProductNotFound):
		return http.StatusNotFound, msgUnavailable
	case errors.Is(err, catalogapp.ErrInvalidInput):
		return http.StatusBadRequest, msgUnavailable
	case errors.Is(err, cartapp.ErrInvalidInput):
		return http.StatusBadRequest, msgBadMelon
	case errors.Is(err, customerapp.ErrAuthFailed):
		return http.StatusUnauthorized, msgLoginFailed
	case errors.Is(err, session.ErrTooLarge):
		return http.StatusRequestEntityTooLarge, msgCartFull
	case errors.Is(err, session.ErrInvalidSession):
		return http.StatusBadRequest, msgSessionReset
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

// fail flashes the shopper-facing message for err and redirects to path.
func (h *Handler) fail(c *gin.Context, sess *session.Session, err error, path string) {
	status, msg := userMessage(err)

	attrs := []any{
		slog.Int("status", status),
		slog.String("path", c.Request.URL.Path),
		slog.Any("err", err),
	}
	if status >= http.StatusInternalServerError {
		h.log.ErrorContext(c.Request.Context(), "request failed", attrs...)
	} else {
		h.log.WarnContext(c.Request.Context(), "request rejected", attrs...)
	}

	sess.AddFlash(msg)
	h.redirect(c, sess, path)
}
