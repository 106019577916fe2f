package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/healthvibe/internal/domain"
	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/deps"
	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/mw"
	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/respond"
	"github.com/MrSnakeDoc/healthvibe/internal/logger"
	"github.com/MrSnakeDoc/healthvibe/internal/session"
	"github.com/MrSnakeDoc/healthvibe/internal/validation"
)

type generateRequest struct {
	Query string `json:"query"`
}

type generateResponse struct {
	Query   string                   `json:"query,omitempty"`
	Fresh   bool                     `json:"fresh"`
	Results []domain.GeneratedRemedy `json:"results"`
	Recent  []string                 `json:"recentSearches"`
}

type sessionResponse struct {
	Results []domain.GeneratedRemedy `json:"results"`
	Recent  []string                 `json:"recentSearches"`
}

// Generate runs a generation for the client. The call blocks for the
// configured processing delay. A newer submission from the same client makes
// this one answer 409.
func Generate(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		scope := mw.ClientID(ctx)

		var req generateRequest
		if err := respond.Decode(w, r, &req); err != nil {
			respond.BadRequest(w, respond.CodeInvalidRequest, "body must be {\"query\": \"...\"}")
			return
		}
		query, err := validation.ValidateQuery(req.Query)
		if err != nil {
			respond.BadRequest(w, respond.CodeInvalidQuery, err.Error())
			return
		}

		out, err := d.Sessions.Submit(ctx, scope, query)
		switch {
		case errors.Is(err, session.ErrSuperseded):
			respond.Error(w, http.StatusConflict, respond.CodeSuperseded, err.Error())
			return
		case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
			d.Logger.Debug("generation aborted", logger.String("query", query), logger.Error(err))
			respond.Error(w, http.StatusGatewayTimeout, respond.CodeTimeout, "generation did not complete in time")
			return
		case err != nil:
			d.Logger.Error("generation failed", logger.String("query", query), logger.Error(err))
			respond.Internal(w)
			return
		}

		if out.Fresh {
			d.Activity.RecordAISearch(ctx, scope, query)
		}

		respond.JSON(w, http.StatusOK, generateResponse{
			Query:   query,
			Fresh:   out.Fresh,
			Results: out.Results,
			Recent:  nonNilStrings(d.Sessions.Recent(scope)),
		})
	}
}

// GenerationSession returns every remedy generated for the client so far,
// newest first, and the recent searches.
func GenerationSession(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope := mw.ClientID(r.Context())
		respond.JSON(w, http.StatusOK, sessionResponse{
			Results: nonNilGenerated(d.Sessions.Results(scope)),
			Recent:  nonNilStrings(d.Sessions.Recent(scope)),
		})
	}
}

func nonNilGenerated(s []domain.GeneratedRemedy) []domain.GeneratedRemedy {
	if s == nil {
		return []domain.GeneratedRemedy{}
	}
	return s
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
