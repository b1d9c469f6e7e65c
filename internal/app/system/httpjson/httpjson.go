// Package httpjson is the JSON boundary shared by every handler: decode a
// request body, write a response, and map error kinds to status codes.
// Internal failures are logged and replaced with a generic message so store
// or driver details never reach callers.
package httpjson

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/peerstudy/peerstudy/internal/app/system/apperr"
	"go.uber.org/zap"
)

// errorResponse is the structured error body every failure returns.
type errorResponse struct {
	Error string `json:"error"`
}

// Decode reads a JSON body into dst, rejecting unknown fields.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperr.Wrap(apperr.KindValidation, "invalid request body", err)
	}
	return nil
}

// Write sends v as JSON with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Message sends a {"message": ...} body, the shape the assignment endpoints
// answer success with.
func Message(w http.ResponseWriter, status int, msg string) {
	Write(w, status, map[string]string{"message": msg})
}

// Error maps err's kind to an HTTP status and writes the structured error
// body. Unclassified errors become a 500 with a generic message.
func Error(w http.ResponseWriter, log *zap.Logger, err error) {
	var e *apperr.Error
	if !errors.As(err, &e) {
		log.Error("unclassified error at HTTP boundary", zap.Error(err))
		Write(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}

	status := http.StatusInternalServerError
	msg := e.Msg
	switch e.Kind {
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindUnauthorized:
		status = http.StatusUnauthorized
	case apperr.KindForbidden:
		status = http.StatusForbidden
	case apperr.KindStore:
		status = http.StatusBadGateway
		log.Error("store error at HTTP boundary", zap.Error(err))
		msg = "storage unavailable"
	default:
		log.Error("internal error at HTTP boundary", zap.Error(err))
		msg = "internal server error"
	}
	Write(w, status, errorResponse{Error: msg})
}
