package httpapi

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"blogpost/internal/adapters/httpapi/middleware"
	"blogpost/internal/config"
	"blogpost/internal/core/apperror"
	profilePort "blogpost/internal/ports/profile"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

const avatarDir = "profile_images"

var allowedImageExt = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

type ProfileController struct {
	pc       ProfileUseCase
	mediaDir string
}

func NewProfileController(pc ProfileUseCase, mediaDir string) *ProfileController {
	return &ProfileController{pc: pc, mediaDir: mediaDir}
}

func (ctl *ProfileController) Profile(c *gin.Context) {
	p, err := ctl.pc.GetProfile(c.Request.Context(), middleware.CurrentIdentity(c))
	if err != nil {
		renderServerError(c, err)
		return
	}
	render(c, http.StatusOK, "profile.html", "Profile", gin.H{"profile": p})
}

func (ctl *ProfileController) EditProfilePage(c *gin.Context) {
	p, err := ctl.pc.GetProfile(c.Request.Context(), middleware.CurrentIdentity(c))
	if err != nil {
		renderServerError(c, err)
		return
	}
	render(c, http.StatusOK, "edit_profile.html", "Edit-Profile", gin.H{"profile": p})
}

func (ctl *ProfileController) EditProfile(c *gin.Context) {
	ctx := c.Request.Context()
	identity := middleware.CurrentIdentity(c)
	in := profilePort.ProfileInput{
		Bio:       c.PostForm("bio"),
		Location:  c.PostForm("location"),
		BirthDate: c.PostForm("birth_date"),
	}

	current, err := ctl.pc.GetProfile(ctx, identity)
	if err != nil {
		renderServerError(c, err)
		return
	}

	image, err := ctl.saveAvatar(c)
	if err != nil {
		var ve *apperror.ValidationError
		if !errors.As(err, &ve) {
			renderServerError(c, err)
			return
		}
		ctl.rerender(c, in, current.Image, ve.Message)
		return
	}
	in.Image = image

	saved, err := ctl.pc.EditProfile(ctx, identity, in)
	if err != nil {
		// the upload is only kept once the profile references it
		ctl.removeAvatar(image)
		var ve *apperror.ValidationError
		if !errors.As(err, &ve) {
			renderServerError(c, err)
			return
		}
		ctl.rerender(c, in, current.Image, ve.Message)
		return
	}
	if image != "" && current.Image != "" && current.Image != saved.Image {
		ctl.removeAvatar(current.Image)
	}
	c.Redirect(http.StatusFound, "/profile")
}

func (ctl *ProfileController) rerender(c *gin.Context, in profilePort.ProfileInput, image, msg string) {
	render(c, http.StatusOK, "edit_profile.html", "Edit-Profile", gin.H{
		"error_message": msg,
		"profile": &profilePort.ProfileDTO{
			Bio:       in.Bio,
			Location:  in.Location,
			BirthDate: in.BirthDate,
			Image:     image,
		},
	})
}

// removeAvatar deletes a stored avatar. Only references inside the avatar dir are touched.
func (ctl *ProfileController) removeAvatar(ref string) {
	if ref == "" || path.Dir(path.Clean(ref)) != avatarDir {
		return
	}
	dst := filepath.Join(ctl.mediaDir, filepath.FromSlash(path.Clean(ref)))
	if err := os.Remove(dst); err != nil && !errors.Is(err, fs.ErrNotExist) {
		config.Logger.Warn("could not remove avatar", zap.String("path", dst), zap.Error(err))
	}
}

// saveAvatar stores the uploaded "image" file under the media dir and returns its reference.
// No upload yields an empty reference.
func (ctl *ProfileController) saveAvatar(c *gin.Context) (string, error) {
	file, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", nil
	}
	if err != nil {
		return "", apperror.NewValidationError("Could not read the uploaded image.")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExt[ext] {
		return "", apperror.NewValidationError("Unsupported image type.")
	}

	ref := path.Join(avatarDir, uuid.Must(uuid.NewV4()).String()+ext)
	dst := filepath.Join(ctl.mediaDir, filepath.FromSlash(ref))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", fmt.Errorf("save avatar: %w", err)
	}
	return ref, nil
}
