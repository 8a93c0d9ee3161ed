package controllers

import (
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/shashiranjanraj/aushadhi/app/services"
	"github.com/shashiranjanraj/aushadhi/pkg/auth"
	"github.com/shashiranjanraj/aushadhi/pkg/response"
	"github.com/shashiranjanraj/aushadhi/pkg/storage"
)

// maxUploadBytes caps multipart uploads at 5 MB.
const maxUploadBytes = 5 << 20

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

type ImageController struct {
	users *services.UserService
}

func NewImageController() *ImageController {
	return &ImageController{users: services.NewUserService()}
}

func saveUpload(r *http.Request, field, dir string) (string, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return "", fmt.Errorf("parse upload: %w", err)
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", fmt.Errorf("missing file %q", field)
	}
	defer file.Close()

	ext := strings.ToLower(path.Ext(header.Filename))
	if !allowedImageExts[ext] {
		return "", fmt.Errorf("unsupported file type %q", ext)
	}

	name := fmt.Sprintf("%s/%d%s", dir, time.Now().UnixNano(), ext)
	if err := storage.PutStream(name, file); err != nil {
		return "", err
	}
	return name, nil
}

// UploadProductImage handles POST /api/images/products (admin). Returns the
// stored path and public URL; the caller attaches the URL to a product.
func (c *ImageController) UploadProductImage(w http.ResponseWriter, r *http.Request) {
	stored, err := saveUpload(r, "image", "products")
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	response.Created(w, map[string]string{
		"path": stored,
		"url":  storage.URL(stored),
	})
}

// UploadProfilePicture handles POST /api/profile/picture.
func (c *ImageController) UploadProfilePicture(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromRequest(r)
	if !ok {
		response.Unauthenticated(w)
		return
	}

	stored, err := saveUpload(r, "image", "avatars")
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	user, err := c.users.SetProfilePicture(identity.ID, storage.URL(stored))
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not update profile picture")
		return
	}
	response.Success(w, user)
}

// DeleteImage handles DELETE /api/images (admin) with ?path=. The path is
// normalised and pinned under the known upload directories so a crafted
// value cannot reach outside them.
func (c *ImageController) DeleteImage(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("path")
	cleaned := path.Clean(strings.TrimPrefix(raw, "/"))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") {
		response.BadRequest(w, "Invalid path")
		return
	}
	if !strings.HasPrefix(cleaned, "products/") && !strings.HasPrefix(cleaned, "avatars/") {
		response.BadRequest(w, "Invalid path")
		return
	}
	if storage.Missing(cleaned) {
		response.NotFound(w)
		return
	}
	if err := storage.Delete(cleaned); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not delete image")
		return
	}
	response.Message(w, "Image deleted")
}
