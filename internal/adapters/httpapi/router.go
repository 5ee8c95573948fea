package httpapi

import (
	"context"

	"blogpost/internal/adapters/httpapi/middleware"
	"blogpost/internal/config"
	postPort "blogpost/internal/ports/post"
	profilePort "blogpost/internal/ports/profile"
	userPort "blogpost/internal/ports/user"

	"github.com/gin-gonic/gin"
)

// UserUseCase is what the controllers and the auth middleware need from the identity service.
type UserUseCase interface {
	RegisterUser(ctx context.Context, in userPort.SignupInput) (*userPort.UserDTO, error)
	LoginUser(ctx context.Context, username, password string) (*userPort.LoginResponse, error)
	ResolveToken(ctx context.Context, token string) (*userPort.UserDTO, error)
	LogoutUser(ctx context.Context, token string) error
	ChangePassword(ctx context.Context, identity *userPort.UserDTO, oldPassword, newPassword string) error
}

type PostUseCase interface {
	CreatePost(ctx context.Context, title, content string, author *userPort.UserDTO) (*postPort.PostDTO, error)
	ListRecent(ctx context.Context) ([]*postPort.PostDTO, error)
}

type ProfileUseCase interface {
	GetProfile(ctx context.Context, identity *userPort.UserDTO) (*profilePort.ProfileDTO, error)
	EditProfile(ctx context.Context, identity *userPort.UserDTO, in profilePort.ProfileInput) (*profilePort.ProfileDTO, error)
}

type RouterConfig struct {
	MediaDir     string
	SecureCookie bool
}

// SetupRoutes wires the use cases into a gin engine.
func SetupRoutes(
	userUC UserUseCase,
	postUC PostUseCase,
	profileUC ProfileUseCase,
	cfg RouterConfig,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.SessionAuth(userUC), middleware.RequestLogger(config.Logger))
	r.SetHTMLTemplate(loadTemplates())
	r.MaxMultipartMemory = 8 << 20
	r.Static("/media", cfg.MediaDir)

	uc := NewUserController(userUC, cfg.SecureCookie)
	pc := NewPostController(postUC)
	prc := NewProfileController(profileUC, cfg.MediaDir)

	r.GET("/", pc.Home)
	r.GET("/about", About)
	r.GET("/contact", Contact)

	r.GET("/login", uc.LoginPage)
	r.POST("/login", uc.LoginUser)
	r.GET("/signup", uc.SignupPage)
	r.POST("/signup", uc.RegisterUser)

	auth := r.Group("/", middleware.RequireLogin())
	auth.GET("/logout", uc.LogoutUser)
	auth.GET("/profile", prc.Profile)
	auth.GET("/profile/edit", prc.EditProfilePage)
	auth.POST("/profile/edit", prc.EditProfile)
	auth.GET("/profile/password", uc.PasswordPage)
	auth.POST("/profile/password", uc.ChangePassword)
	auth.GET("/post/new", pc.NewPostPage)
	auth.POST("/post/new", pc.CreatePost)

	return r
}
