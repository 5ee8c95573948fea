package middleware

import (
	"context"
	"errors"
	"net/http"

	"blogpost/internal/config"
	"blogpost/internal/core/apperror"
	userPort "blogpost/internal/ports/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	SessionCookie = "blogpost_session"
	identityKey   = "identity"
	tokenKey      = "sessionToken"
)

// TokenResolver maps a session token to the identity it belongs to.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (*userPort.UserDTO, error)
}

// SessionAuth loads the identity behind the session cookie, if any. Anonymous requests pass through.
func SessionAuth(resolver TokenResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.Next()
			return
		}

		identity, err := resolver.ResolveToken(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, apperror.ErrUnauthenticated) {
				config.Logger.Error("could not resolve session", zap.Error(err))
			}
			c.Next()
			return
		}

		c.Set(identityKey, identity)
		c.Set(tokenKey, token)
		c.Next()
	}
}

// RequireLogin sends anonymous visitors to the login page.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentIdentity(c) == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the authenticated identity or nil.
func CurrentIdentity(c *gin.Context) *userPort.UserDTO {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	identity, _ := v.(*userPort.UserDTO)
	return identity
}

// SessionToken returns the raw token of an authenticated request.
func SessionToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}
