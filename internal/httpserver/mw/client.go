package mw

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/healthvibe/internal/logger"
)

const (
	ClientHeader = "X-Client-ID"
	ClientCookie = "hv_client"

	maxClientIDLen = 128
	cookieMaxAge   = 365 * 24 * time.Hour
)

// ClientScope resolves the opaque client ID scoping per-client state: the
// X-Client-ID header, else the hv_client cookie, else a new UUID issued as a
// cookie. Malformed values are ignored.
func ClientScope(secureCookie bool, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(ClientHeader)
			if !validClientID(id) {
				id = ""
				if c, err := r.Cookie(ClientCookie); err == nil && validClientID(c.Value) {
					id = c.Value
				}
			}
			if id == "" {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     ClientCookie,
					Value:    id,
					Path:     "/",
					MaxAge:   int(cookieMaxAge.Seconds()),
					HttpOnly: true,
					Secure:   secureCookie,
					SameSite: http.SameSiteLaxMode,
				})
				log.Debug("issued client id", logger.String("client_id", id))
			}
			w.Header().Set(ClientHeader, id)
			next.ServeHTTP(w, r.WithContext(WithClientID(r.Context(), id)))
		})
	}
}

// ExpireClientCookie tells the browser to drop the client cookie.
func ExpireClientCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: ClientCookie, Value: "", Path: "/", MaxAge: -1})
}

func validClientID(s string) bool {
	if s == "" || len(s) > maxClientIDLen {
		return false
	}
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}
