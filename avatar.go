package main

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxAvatarSize = 5 * 1024 * 1024

// updateAvatarHandler stores a downscaled copy of the uploaded image under
// the public upload dir and points the user's avatar URL at it.
func (a *App) updateAvatarHandler(c *gin.Context) {
	user := currentUser(c)

	file, err := c.FormFile("avatar")
	if err != nil {
		respondError(c, newAPIError(http.StatusBadRequest, "Avatar image is required"))
		return
	}
	if file.Size > maxAvatarSize {
		respondError(c, newAPIError(http.StatusBadRequest, "avatar too large (max 5MB)"))
		return
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer src.Close()

	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		respondError(c, newAPIError(http.StatusBadRequest, "unsupported image format"))
		return
	}
	img = imaging.Fit(img, 512, 512, imaging.Lanczos)

	dir := filepath.Join(a.cfg.UploadDir, "avatars")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		respondError(c, err)
		return
	}
	name := uuid.New().String() + ".png"
	if err := imaging.Save(img, filepath.Join(dir, name)); err != nil {
		respondError(c, err)
		return
	}

	avatarURL := "/public/avatars/" + name
	if err := a.db.Model(user).Update("avatar_url", avatarURL).Error; err != nil {
		respondError(c, err)
		return
	}
	user.AvatarURL = avatarURL
	respondJSON(c, http.StatusOK, "Avatar updated successfully", user)
}
