package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func About(c *gin.Context) {
	render(c, http.StatusOK, "about.html", "About", nil)
}

func Contact(c *gin.Context) {
	render(c, http.StatusOK, "contact.html", "Contact", nil)
}
