// Package avatar stores profile images for authenticated users.
package avatar

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/MrSnakeDoc/healthvibe/internal/logger"
	"github.com/MrSnakeDoc/healthvibe/internal/store"
)

// MaxSize is the largest accepted upload in bytes.
const MaxSize = 5 << 20

var (
	ErrTooLarge        = errors.New("file size must be less than 5MB")
	ErrUnsupportedType = errors.New("only JPEG, PNG, and WebP images are allowed")
	ErrEmpty           = errors.New("file is empty")
	ErrNotFound        = errors.New("no profile image")
)

var extensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// Avatar is a stored profile image. Path is the object key kept as the user's
// reference; URL is derived from it.
type Avatar struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

type Service struct {
	objects ObjectStore
	kv      store.KV
	log     logger.Logger
	now     func() time.Time
}

func NewService(objects ObjectStore, kv store.KV, log logger.Logger) *Service {
	return &Service{objects: objects, kv: kv, log: log, now: time.Now}
}

// ObjectKey returns "<userID>/<unix millis>.<ext>".
func ObjectKey(userID string, at time.Time, ext string) string {
	return userID + "/" + strconv.FormatInt(at.UnixMilli(), 10) + "." + ext
}

// Upload stores a new image for userID and drops the previous one.
func (s *Service) Upload(ctx context.Context, userID, contentType string, r io.Reader) (Avatar, error) {
	ext, ok := extensions[contentType]
	if !ok {
		return Avatar{}, ErrUnsupportedType
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxSize+1))
	if err != nil {
		return Avatar{}, fmt.Errorf("failed to read upload: %w", err)
	}
	switch {
	case len(data) == 0:
		return Avatar{}, ErrEmpty
	case len(data) > MaxSize:
		return Avatar{}, ErrTooLarge
	}

	previous, hadPrevious := s.currentPath(ctx, userID)

	key := ObjectKey(userID, s.now(), ext)
	if err := s.objects.Put(ctx, key, contentType, bytes.NewReader(data)); err != nil {
		return Avatar{}, fmt.Errorf("failed to upload image: %w", err)
	}
	if err := store.SetJSON(ctx, s.kv, scope(userID), store.KeyAvatar, key); err != nil {
		s.log.Warn("avatar reference not saved", logger.String("user_id", userID), logger.Error(err))
	}

	if hadPrevious && previous != key {
		if err := s.objects.Delete(ctx, previous); err != nil {
			s.log.Warn("previous avatar not deleted",
				logger.String("user_id", userID),
				logger.String("path", previous),
				logger.Error(err))
		}
	}

	s.log.Info("avatar uploaded", logger.String("user_id", userID), logger.Int("bytes", len(data)))
	return Avatar{Path: key, URL: s.objects.URL(key)}, nil
}

// Current returns the stored image of userID.
func (s *Service) Current(ctx context.Context, userID string) (Avatar, bool) {
	path, ok := s.currentPath(ctx, userID)
	if !ok {
		return Avatar{}, false
	}
	return Avatar{Path: path, URL: s.objects.URL(path)}, true
}

// Remove deletes the stored image of userID.
func (s *Service) Remove(ctx context.Context, userID string) error {
	path, ok := s.currentPath(ctx, userID)
	if !ok {
		return ErrNotFound
	}
	if err := s.objects.Delete(ctx, path); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	if s.kv != nil {
		if err := s.kv.Delete(ctx, scope(userID), store.KeyAvatar); err != nil {
			s.log.Warn("avatar reference not cleared", logger.String("user_id", userID), logger.Error(err))
		}
	}
	return nil
}

func (s *Service) currentPath(ctx context.Context, userID string) (string, bool) {
	var path string
	ok, err := store.GetJSON(ctx, s.kv, scope(userID), store.KeyAvatar, &path)
	if err != nil {
		s.log.Warn("avatar reference read failed", logger.String("user_id", userID), logger.Error(err))
		return "", false
	}
	return path, ok && path != ""
}

// avatar references are per user, not per client
func scope(userID string) string {
	return "user:" + userID
}
