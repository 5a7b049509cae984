package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dwikikusuma/ubermelon/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionKey      = "session"
	requestIDHeader = "X-Request-ID"
)

func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header(requestIDHeader, reqID)

		c.Next()

		log.InfoContext(c.Request.Context(), "http request",
			slog.String("request_id", reqID),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}

func recovery(log *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.ErrorContext(c.Request.Context(), "panic recovered",
			slog.Any("panic", recovered),
			slog.String("path", c.Request.URL.Path))

		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Title": "Error"})
		c.Abort()
	})
}

// loadSession attaches the request's session to the gin context. Handlers
// own it for the rest of the request and must save it themselves.
func (h *Handler) loadSession(c *gin.Context) {
	sess := h.sessions.Load(c.Request)
	c.Set(sessionKey, &sess)
	c.Next()
}

func currentSession(c *gin.Context) *session.Session {
	if v, ok := c.Get(sessionKey); ok {
		if sess, ok := v.(*session.Session); ok {
			return sess
		}
	}
	return &session.Session{}
}
