package response

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// Error codes surfaced to clients. Voice frontends branch on the code (retry,
// re-auth, restart the interview) rather than parsing the message text.
const (
	CodeInvalidRequest  = "invalid_request"
	CodeUnauthorized    = "unauthorized"
	CodeForbidden       = "forbidden"
	CodeSessionNotFound = "session_not_found"
	CodeRateLimited     = "rate_limited"
	CodeNotReady        = "not_ready"
	CodeInternal        = "internal_error"
)

// Envelope is the wire shape of every JSON response. RequestID ties a client
// report back to the server logs for the same request.
type Envelope struct {
	Success   bool       `json:"success"`
	RequestID string     `json:"requestId,omitempty"`
	Data      any        `json:"data,omitempty"`
	Error     *ErrorBody `json:"error,omitempty"`
}

// ErrorBody carries a machine-readable code alongside the human message.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func write(w http.ResponseWriter, r *http.Request, status int, env Envelope) {
	env.RequestID = middleware.GetReqID(r.Context())
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(env)
}

// JSON sends a success envelope with data.
func JSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	write(w, r, status, Envelope{
		Success: status >= 200 && status < 300,
		Data:    data,
	})
}

// Fail sends an error envelope with the given code.
func Fail(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	write(w, r, status, Envelope{
		Error: &ErrorBody{Code: code, Message: message},
	})
}

// OK sends a 200 OK response with data.
func OK(w http.ResponseWriter, r *http.Request, data any) {
	JSON(w, r, http.StatusOK, data)
}

// Created sends a 201 Created response with data.
func Created(w http.ResponseWriter, r *http.Request, data any) {
	JSON(w, r, http.StatusCreated, data)
}

// NoContent sends a 204 No Content response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// BadRequest rejects a malformed or invalid request body.
func BadRequest(w http.ResponseWriter, r *http.Request, message string) {
	Fail(w, r, http.StatusBadRequest, CodeInvalidRequest, message)
}

// Unauthorized rejects a request with a missing or invalid session token.
func Unauthorized(w http.ResponseWriter, r *http.Request, message string) {
	Fail(w, r, http.StatusUnauthorized, CodeUnauthorized, message)
}

// Forbidden rejects a valid token used against another session.
func Forbidden(w http.ResponseWriter, r *http.Request, message string) {
	Fail(w, r, http.StatusForbidden, CodeForbidden, message)
}

// NotFound reports a session that was never created or has been evicted.
func NotFound(w http.ResponseWriter, r *http.Request, message string) {
	Fail(w, r, http.StatusNotFound, CodeSessionNotFound, message)
}

// TooManyRequests reports a rate-limited caller.
func TooManyRequests(w http.ResponseWriter, r *http.Request, message string) {
	Fail(w, r, http.StatusTooManyRequests, CodeRateLimited, message)
}

// Unavailable reports a dependency that is not ready to serve.
func Unavailable(w http.ResponseWriter, r *http.Request, message string) {
	Fail(w, r, http.StatusServiceUnavailable, CodeNotReady, message)
}

// InternalError reports an unexpected server-side failure.
func InternalError(w http.ResponseWriter, r *http.Request, message string) {
	Fail(w, r, http.StatusInternalServerError, CodeInternal, message)
}
