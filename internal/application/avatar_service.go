package application

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// MaxAvatarSize is the largest accepted avatar upload, in bytes.
const MaxAvatarSize = 2 << 20

// ObjectStore writes public objects and returns their URL.
type ObjectStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

var imageExt = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// AvatarService stores tutor pictures.
type AvatarService struct {
	Store  ObjectStore
	Logger *logrus.Logger
}

// NewAvatarService returns a service that rejects uploads when store is nil.
func NewAvatarService(store ObjectStore, logger *logrus.Logger) *AvatarService {
	return &AvatarService{Store: store, Logger: logger}
}

// Upload rejects anything that is not a supported image or is larger than
// MaxAvatarSize, and stores the rest under avatars/<uuid><ext>.
func (s *AvatarService) Upload(ctx context.Context, r io.Reader) (string, error) {
	if s.Store == nil {
		return "", ErrStorageDisabled
	}
	data, err := io.ReadAll(io.LimitReader(r, MaxAvatarSize+1))
	if err != nil {
		return "", err
	}
	if len(data) > MaxAvatarSize {
		return "", ErrImageTooLarge
	}

	contentType := http.DetectContentType(data)
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	ext, ok := imageExt[contentType]
	if !ok {
		return "", ErrUnsupportedImage
	}

	objectPath := path.Join("avatars", uuid.NewString()+ext)
	url, err := s.Store.Upload(ctx, objectPath, contentType, bytes.NewReader(data))
	if err != nil {
		s.Logger.WithError(err).WithField("object", objectPath).Error("avatar upload failed")
		return "", err
	}
	countEvent("avatars")
	return url, nil
}
