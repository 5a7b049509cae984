package web

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/dwikikusuma/ubermelon/internal/session"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

func loadTemplates() (*template.Template, error) {
	return template.New("").ParseFS(templateFS, "templates/*.html")
}

// render consumes pending flashes, writes the session and renders page.
func (h *Handler) render(c *gin.Context, sess *session.Session, status int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Flashes"] = sess.PopFlashes()
	data["LoggedIn"] = sess.LoggedIn()
	data["Email"] = sess.Email

	h.save(c, sess)
	c.HTML(status, page, data)
}

// redirect writes the session and sends the browser to path.
func (h *Handler) redirect(c *gin.Context, sess *session.Session, path string) {
	h.save(c, sess)
	c.Redirect(http.StatusSeeOther, path)
}

func (h *Handler) save(c *gin.Context, sess *session.Session) {
	if err := h.sessions.Save(c.Writer, *sess); err != nil {
		h.log.ErrorContext(c.Request.Context(), "session save failed", slog.Any("err", err))
	}
}
