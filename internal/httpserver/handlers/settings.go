package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/healthvibe/internal/domain"
	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/deps"
	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/mw"
	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/respond"
)

type toggleSettingRequest struct {
	Key string `json:"key"`
}

func GetSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, d.Settings.Get(r.Context(), mw.ClientID(r.Context())))
	}
}

// PutSettings replaces the whole record. Fields missing from the body keep
// their default value.
func PutSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v := domain.DefaultSettings()
		if err := respond.Decode(w, r, &v); err != nil {
			respond.BadRequest(w, respond.CodeInvalidSetting, "invalid settings record")
			return
		}
		d.Settings.Save(r.Context(), mw.ClientID(r.Context()), v)
		respond.JSON(w, http.StatusOK, v)
	}
}

// ToggleSetting flips one setting named by its dotted key, for example
// "privacy.dataSharing", and returns the updated record.
func ToggleSetting(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req toggleSettingRequest
		if err := respond.Decode(w, r, &req); err != nil {
			respond.BadRequest(w, respond.CodeInvalidRequest, "body must be {\"key\": \"section.name\"}")
			return
		}
		key, err := domain.ParseSettingKey(req.Key)
		if err != nil {
			respond.BadRequest(w, respond.CodeInvalidSetting, err.Error())
			return
		}
		v, err := d.Settings.Toggle(r.Context(), mw.ClientID(r.Context()), key)
		if err != nil {
			respond.BadRequest(w, respond.CodeInvalidSetting, err.Error())
			return
		}
		respond.JSON(w, http.StatusOK, v)
	}
}
