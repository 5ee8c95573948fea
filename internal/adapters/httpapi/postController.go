package httpapi

import (
	"errors"
	"net/http"

	"blogpost/internal/adapters/httpapi/middleware"
	"blogpost/internal/core/apperror"
	postPort "blogpost/internal/ports/post"

	"github.com/gin-gonic/gin"
)

type PostController struct{ pc PostUseCase }

func NewPostController(pc PostUseCase) *PostController { return &PostController{pc: pc} }

// Home renders the feed. Anonymous visitors get an empty feed, not an error.
func (ctl *PostController) Home(c *gin.Context) {
	posts := []*postPort.PostDTO{}
	if middleware.CurrentIdentity(c) != nil {
		var err error
		posts, err = ctl.pc.ListRecent(c.Request.Context())
		if err != nil {
			renderServerError(c, err)
			return
		}
	}
	render(c, http.StatusOK, "index.html", "Home", gin.H{"posts": posts})
}

func (ctl *PostController) NewPostPage(c *gin.Context) {
	render(c, http.StatusOK, "post.html", "New-Post", nil)
}

func (ctl *PostController) CreatePost(c *gin.Context) {
	title := c.PostForm("title")
	content := c.PostForm("content")

	_, err := ctl.pc.CreatePost(c.Request.Context(), title, content, middleware.CurrentIdentity(c))
	if err != nil {
		var ve *apperror.ValidationError
		if !errors.As(err, &ve) {
			renderServerError(c, err)
			return
		}
		// hand the input back so nothing typed is lost
		render(c, http.StatusOK, "post.html", "New-Post", gin.H{
			"error_message": ve.Message,
			"title":         title,
			"content":       content,
		})
		return
	}
	c.Redirect(http.StatusFound, "/")
}
