package httpapi

import (
	"errors"
	"net/http"
	"time"

	"blogpost/internal/adapters/httpapi/middleware"
	"blogpost/internal/core/apperror"
	userPort "blogpost/internal/ports/user"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidCredentials = "Invalid credentials"
	msgDuplicateUsername  = "Username already exists. Please choose a different one."
)

type UserController struct {
	uc           UserUseCase
	secureCookie bool
}

func NewUserController(uc UserUseCase, secureCookie bool) *UserController {
	return &UserController{uc: uc, secureCookie: secureCookie}
}

func (ctl *UserController) LoginPage(c *gin.Context) {
	render(c, http.StatusOK, "login.html", "Login", nil)
}

func (ctl *UserController) LoginUser(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	res, err := ctl.uc.LoginUser(c.Request.Context(), username, password)
	if err != nil {
		if !errors.Is(err, apperror.ErrInvalidCredentials) {
			renderServerError(c, err)
			return
		}
		render(c, http.StatusOK, "login.html", "Login", gin.H{
			"error_message": msgInvalidCredentials,
			"username":      username,
		})
		return
	}

	ctl.setSession(c, res)
	c.Redirect(http.StatusFound, "/")
}

func (ctl *UserController) SignupPage(c *gin.Context) {
	render(c, http.StatusOK, "signup.html", "Signup", nil)
}

func (ctl *UserController) RegisterUser(c *gin.Context) {
	in := userPort.SignupInput{
		FirstName: c.PostForm("firstname"),
		LastName:  c.PostForm("lastname"),
		Username:  c.PostForm("username"),
		Email:     c.PostForm("email"),
		Password:  c.PostForm("password"),
	}

	if _, err := ctl.uc.RegisterUser(c.Request.Context(), in); err != nil {
		var ve *apperror.ValidationError
		var msg string
		switch {
		case errors.As(err, &ve):
			msg = ve.Message
		case errors.Is(err, apperror.ErrDuplicateUsername):
			msg = msgDuplicateUsername
		default:
			renderServerError(c, err)
			return
		}
		render(c, http.StatusOK, "signup.html", "Signup", gin.H{
			"error_message": msg,
			"firstname":     in.FirstName,
			"lastname":      in.LastName,
			"username":      in.Username,
			"email":         in.Email,
		})
		return
	}

	// sign the new identity in straight away
	res, err := ctl.uc.LoginUser(c.Request.Context(), in.Username, in.Password)
	if err != nil {
		renderServerError(c, err)
		return
	}
	ctl.setSession(c, res)
	c.Redirect(http.StatusFound, "/profile")
}

func (ctl *UserController) LogoutUser(c *gin.Context) {
	if err := ctl.uc.LogoutUser(c.Request.Context(), middleware.SessionToken(c)); err != nil {
		_ = c.Error(err)
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", ctl.secureCookie, true)
	c.Redirect(http.StatusFound, "/")
}

func (ctl *UserController) PasswordPage(c *gin.Context) {
	render(c, http.StatusOK, "password.html", "Change-Password", nil)
}

func (ctl *UserController) ChangePassword(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	err := ctl.uc.ChangePassword(c.Request.Context(), identity, c.PostForm("old_password"), c.PostForm("new_password"))
	if err != nil {
		var ve *apperror.ValidationError
		var msg string
		switch {
		case errors.As(err, &ve):
			msg = ve.Message
		case errors.Is(err, apperror.ErrInvalidCredentials):
			msg = msgInvalidCredentials
		default:
			renderServerError(c, err)
			return
		}
		render(c, http.StatusOK, "password.html", "Change-Password", gin.H{"error_message": msg})
		return
	}
	c.Redirect(http.StatusFound, "/profile")
}

func (ctl *UserController) setSession(c *gin.Context, res *userPort.LoginResponse) {
	maxAge := int(time.Until(time.Unix(res.ExpiresAt, 0)).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, res.Token, maxAge, "/", "", ctl.secureCookie, true)
}
