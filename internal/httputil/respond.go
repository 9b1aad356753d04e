package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/dungeonworks/gateway/internal/errors"
)

// WriteJSON writes a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteRawJSON forwards an already-encoded JSON body, preserving the
// originating status. Used for downstream pass-through responses.
func WriteRawJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if len(body) > 0 && json.Valid(body) {
		_, _ = w.Write(body)
		return
	}
	_, _ = w.Write([]byte("{}"))
}

// DecodeJSON decodes the request body into target, writing a 400 and
// returning false on failure.
func DecodeJSON(w http.ResponseWriter, r *http.Request, target interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		BadRequest(w, "invalid request body")
		return false
	}
	return true
}

// Error renders a ServiceError with its HTTP status.
func Error(w http.ResponseWriter, err error) {
	se := errors.AsServiceError(err)
	WriteJSON(w, se.HTTPStatus, se)
}

// BadRequest writes a 400 with the given message.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, errors.Validation(message))
}

// Unauthorized writes a 401 with the given message.
func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, errors.Unauthorized(message))
}

// NotFound writes a 404 with the given message.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, errors.NotFound(message))
}

// InternalError writes a 500 with the given message.
func InternalError(w http.ResponseWriter, message string) {
	Error(w, errors.Internal(message))
}
