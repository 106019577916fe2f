package handlers

import (
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/deps"
	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/respond"
)

type assistantRequest struct {
	Message string `json:"message"`
}

// Assistant answers a chat message with a canned reply. An empty message gets
// the greeting.
func Assistant(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req assistantRequest
		if err := respond.Decode(w, r, &req); err != nil {
			respond.BadRequest(w, respond.CodeInvalidRequest, "body must be {\"message\": \"...\"}")
			return
		}
		if strings.TrimSpace(req.Message) == "" {
			respond.JSON(w, http.StatusOK, d.Responder.Greeting())
			return
		}
		respond.JSON(w, http.StatusOK, d.Responder.Reply(req.Message))
	}
}
