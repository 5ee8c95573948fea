package httpapi

import (
	"embed"
	"html/template"
	"net/http"

	"blogpost/internal/adapters/httpapi/middleware"
	"blogpost/internal/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templatesFS embed.FS

func loadTemplates() *template.Template {
	return template.Must(template.New("").ParseFS(templatesFS, "templates/*.html"))
}

// render adds the page title and the current identity to every view model.
func render(c *gin.Context, status int, name, pageName string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["pageName"] = pageName + " | BlogPost"
	data["user"] = middleware.CurrentIdentity(c)
	c.HTML(status, name, data)
}

func renderServerError(c *gin.Context, err error) {
	_ = c.Error(err)
	config.Logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	render(c, http.StatusInternalServerError, "error.html", "Error", nil)
}
