// Package respond writes JSON bodies and the API error envelope.
package respond

import (
	"encoding/json"
	"net/http"
)

// Error codes of the API error envelope.
const (
	CodeNotFound       = "not_found"
	CodeInvalidQuery   = "invalid_query"
	CodeInvalidRating  = "invalid_rating"
	CodeInvalidSetting = "invalid_setting"
	CodeInvalidFile    = "invalid_file"
	CodeInvalidRequest = "invalid_request"
	CodeUnauthorized   = "unauthorized"
	CodeForbidden      = "forbidden"
	CodeSuperseded     = "superseded"
	CodeRateLimited    = "rate_limited"
	CodeRemoteFailure  = "remote_failure"
	CodeTimeout        = "timeout"
	CodeUnavailable    = "unavailable"
	CodeInternal       = "internal"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// JSON writes v with status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes {"error":{"code":..,"message":..}} with status.
func Error(w http.ResponseWriter, status int, code, message string) {
	JSON(w, status, errorBody{Error: errorDetail{Code: code, Message: message}})
}

func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, CodeNotFound, message)
}

func BadRequest(w http.ResponseWriter, code, message string) {
	Error(w, http.StatusBadRequest, code, message)
}

func Internal(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, CodeInternal, "internal error")
}

// Decode reads a JSON body into dst, rejecting unknown fields and bodies over
// 1 MiB.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
