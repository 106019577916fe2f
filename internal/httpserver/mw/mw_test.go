package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/healthvibe/internal/identity"
	"github.com/MrSnakeDoc/healthvibe/internal/logger"
)

func echoClient() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(ClientID(r.Context())))
	})
}

func TestClientScope(t *testing.T) {
	h := ClientScope(false, logger.NewNop())(echoClient())

	t.Run("header wins", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(ClientHeader, "abc-123")
		req.AddCookie(&http.Cookie{Name: ClientCookie, Value: "cookie-id"})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, "abc-123", rec.Body.String())
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("cookie used when header missing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: ClientCookie, Value: "cookie-id"})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, "cookie-id", rec.Body.String())
	})

	t.Run("new id issued", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(ClientHeader, "bad id with spaces")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, ClientCookie, cookies[0].Name)
		assert.Equal(t, cookies[0].Value, rec.Body.String())
		assert.Len(t, rec.Body.String(), 36)
	})
}

func TestIdentity(t *testing.T) {
	v := identity.NewVerifier("secret")
	tok, err := v.Sign(identity.User{ID: "u-1"}, time.Hour)
	require.NoError(t, err)

	h := Identity(v, logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := User(r.Context())
		if ok {
			_, _ = w.Write([]byte(u.ID))
		}
	}))

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"anonymous", "", http.StatusOK, ""},
		{"valid", "Bearer " + tok, http.StatusOK, "u-1"},
		{"invalid", "Bearer nope", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, tt.body, rec.Body.String())
			} else {
				assert.Contains(t, rec.Body.String(), `"unauthorized"`)
			}
		})
	}
}

func TestRateLimitPerKey(t *testing.T) {
	h := RateLimit(RateLimitConfig{
		Burst:        2,
		RefillPerMin: 1,
		KeyFunc:      func(r *http.Request) string { return r.Header.Get("K") },
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	do := func(key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("K", key)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, do("a").Code)
	assert.Equal(t, http.StatusOK, do("a").Code)
	limited := do("a")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.NotEmpty(t, limited.Header().Get("Retry-After"))
	assert.Contains(t, limited.Body.String(), `"rate_limited"`)

	assert.Equal(t, http.StatusOK, do("b").Code, "other keys have their own bucket")
}

func TestEnforceHost(t *testing.T) {
	h := EnforceHost([]string{"*.example.com", "localhost"}, logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	tests := map[string]int{
		"api.example.com":      http.StatusOK,
		"API.Example.com:8443": http.StatusOK,
		"localhost:8080":       http.StatusOK,
		"example.org":          http.StatusForbidden,
	}
	for host, want := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Host = host
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code, host)
	}
}

func TestAllowOnlyCIDRS(t *testing.T) {
	h := AllowOnlyCIDRS([]string{"10.0.0.0/8"}, false, logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for addr, want := range map[string]int{"10.1.2.3:5555": http.StatusOK, "192.168.1.1:5555": http.StatusForbidden} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code, addr)
	}
}
