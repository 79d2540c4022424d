// internal/app/system/httpjson/httpjson.go

// Package httpjson renders JSON responses and maps the apperr taxonomy to
// HTTP status codes in one place, so feature handlers stay thin.
package httpjson

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/modelcove/groupsync/internal/domain/apperr"
	"go.uber.org/zap"
)

// errorBody is the JSON structure for error responses.
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Write renders v as JSON with the given status code.
func Write(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps err onto the HTTP status space and renders an error body.
// Unrecognized errors become 500 with a generic message; the real error is
// logged, not leaked.
func WriteError(w http.ResponseWriter, log *zap.Logger, err error) {
	status, code := statusFor(err)
	if status == http.StatusInternalServerError {
		if log != nil {
			log.Error("internal error", zap.Error(err))
		}
		Write(w, status, errorBody{Error: "internal error"})
		return
	}
	Write(w, status, errorBody{Error: err.Error(), Code: code})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, apperr.ErrBadParameters):
		return http.StatusBadRequest, "BadParameters"
	case errors.Is(err, apperr.ErrIncorrectCredentials):
		return http.StatusUnauthorized, "IncorrectCredentials"
	case errors.Is(err, apperr.ErrAccessDenied):
		return http.StatusForbidden, "AccessDenied"
	case errors.Is(err, apperr.ErrGroupNotFound):
		return http.StatusNotFound, "GroupNotFound"
	case errors.Is(err, apperr.ErrUserNotFound):
		return http.StatusNotFound, "UserNotFound"
	case errors.Is(err, apperr.ErrAccountNotFound):
		return http.StatusNotFound, "AccountNotFound"
	case errors.Is(err, apperr.ErrUnknownGroup):
		return http.StatusUnprocessableEntity, "UnknownGroup"
	case errors.Is(err, apperr.ErrUnknownUser):
		return http.StatusUnprocessableEntity, "UnknownUser"
	case errors.Is(err, apperr.ErrNameReserved):
		return http.StatusConflict, "NameReserved"
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict, "GroupAlreadyExists"
	}
	return http.StatusInternalServerError, ""
}
