package mw

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/healthvibe/internal/logger"
)

// Log writes one http_request line per request, at warn level for 5xx. The
// client and user IDs are filled in by ClientScope and Identity further down
// the chain, so they are empty on routes without them.
func Log(loggerClient logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			info := &requestInfo{}
			r = r.WithContext(withRequestInfo(r.Context(), info))

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			emit := loggerClient.Info
			if status >= http.StatusInternalServerError {
				emit = loggerClient.Warn
			}
			emit("http_request",
				logger.String("method", r.Method),
				logger.String("path", r.URL.Path),
				logger.Int("status", status),
				logger.Int("bytes", ww.BytesWritten()),
				logger.Duration("duration", time.Since(start)),
				logger.String("remote_ip", r.RemoteAddr),
				logger.String("request_id", middleware.GetReqID(r.Context())),
				logger.String("client_id", info.clientID),
				logger.String("user_id", info.userID),
			)
		})
	}
}
