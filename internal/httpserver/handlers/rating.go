package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/healthvibe/internal/activity"
	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/deps"
	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/mw"
	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/respond"
)

type ratingRequest struct {
	Rating int `json:"rating"`
}

type ratingResponse struct {
	RemedyID string `json:"remedyId"`
	Rating   int    `json:"rating"`
}

// RateRemedy records a 1-5 star rating of a catalog remedy.
func RateRemedy(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		rem, ok := d.Catalog.RemedyByID(chi.URLParam(r, "id"))
		if !ok {
			respond.NotFound(w, "remedy not found")
			return
		}

		var req ratingRequest
		if err := respond.Decode(w, r, &req); err != nil {
			respond.BadRequest(w, respond.CodeInvalidRequest, "body must be {\"rating\": 1-5}")
			return
		}

		err := d.Activity.Rate(ctx, mw.ClientID(ctx), rem.ID, rem.Name, req.Rating)
		if errors.Is(err, activity.ErrInvalidRating) {
			respond.BadRequest(w, respond.CodeInvalidRating, err.Error())
			return
		}
		if err != nil {
			respond.Internal(w)
			return
		}
		respond.JSON(w, http.StatusOK, ratingResponse{RemedyID: rem.ID, Rating: req.Rating})
	}
}
