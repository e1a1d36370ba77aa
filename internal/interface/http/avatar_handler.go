package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Renanf68/nlw2-server/internal/application"
	"github.com/Renanf68/nlw2-server/pkg/response"
)

type AvatarUploader interface {
	Upload(ctx context.Context, r io.Reader) (string, error)
}

type AvatarHandler struct {
	Svc AvatarUploader
}

func NewAvatarHandler(svc AvatarUploader) *AvatarHandler {
	return &AvatarHandler{Svc: svc}
}

// Upload handles multipart POST /avatars with the image in field "file".
func (h *AvatarHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, application.MaxAvatarSize+1<<20)
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "file is required", nil)
		return
	}
	if fh.Size > application.MaxAvatarSize {
		response.Error(c, http.StatusRequestEntityTooLarge, application.ErrImageTooLarge.Error(), nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "cannot read file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.Upload(c.Request.Context(), f)
	switch {
	case err == nil:
		response.JSON(c, http.StatusCreated, gin.H{"url": url})
	case errors.Is(err, application.ErrStorageDisabled):
		response.Error(c, http.StatusServiceUnavailable, err.Error(), nil)
	case errors.Is(err, application.ErrImageTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, err.Error(), nil)
	case errors.Is(err, application.ErrUnsupportedImage):
		response.Error(c, http.StatusUnsupportedMediaType, err.Error(), nil)
	default:
		response.Error(c, http.StatusBadGateway, "avatar upload failed", nil)
	}
}
