package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/healthvibe/internal/avatar"
	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/deps"
	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/mw"
	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/respond"
	"github.com/MrSnakeDoc/healthvibe/internal/logger"
)

// multipart framing allowance on top of the image itself
const multipartOverhead = 64 << 10

// UploadAvatar stores the multipart "file" part as the caller's profile image,
// replacing the previous one. Routed behind mw.RequireUser.
func UploadAvatar(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := mw.User(r.Context())

		r.Body = http.MaxBytesReader(w, r.Body, avatar.MaxSize+multipartOverhead)
		file, header, err := r.FormFile("file")
		if err != nil {
			var tooBig *http.MaxBytesError
			if errors.As(err, &tooBig) {
				respond.BadRequest(w, respond.CodeInvalidFile, avatar.ErrTooLarge.Error())
				return
			}
			respond.BadRequest(w, respond.CodeInvalidFile, "multipart field \"file\" is required")
			return
		}
		defer file.Close()

		if header.Size > avatar.MaxSize {
			respond.BadRequest(w, respond.CodeInvalidFile, avatar.ErrTooLarge.Error())
			return
		}

		a, err := d.Avatars.Upload(r.Context(), user.ID, header.Header.Get("Content-Type"), file)
		switch {
		case errors.Is(err, avatar.ErrTooLarge),
			errors.Is(err, avatar.ErrUnsupportedType),
			errors.Is(err, avatar.ErrEmpty):
			respond.BadRequest(w, respond.CodeInvalidFile, err.Error())
			return
		case err != nil:
			d.Logger.Error("avatar upload failed", logger.String("user_id", user.ID), logger.Error(err))
			respond.Error(w, http.StatusBadGateway, respond.CodeRemoteFailure, "failed to upload image")
			return
		}
		respond.JSON(w, http.StatusOK, a)
	}
}

func DeleteAvatar(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := mw.User(r.Context())

		err := d.Avatars.Remove(r.Context(), user.ID)
		switch {
		case errors.Is(err, avatar.ErrNotFound):
			respond.NotFound(w, err.Error())
			return
		case err != nil:
			d.Logger.Error("avatar delete failed", logger.String("user_id", user.ID), logger.Error(err))
			respond.Error(w, http.StatusBadGateway, respond.CodeRemoteFailure, "failed to delete image")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// AvatarsDisabled answers the avatar routes when no image backend is configured.
func AvatarsDisabled(w http.ResponseWriter, r *http.Request) {
	respond.Error(w, http.StatusServiceUnavailable, respond.CodeUnavailable, "profile images are disabled")
}

// NoListing hides directory listings of a file server.
func NoListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			respond.NotFound(w, "not found")
			return
		}
		w.Header().Set("Cache-Control", "public, max-age=86400")
		next.ServeHTTP(w, r)
	})
}
