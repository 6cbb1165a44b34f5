package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/drawvault/workspace-api/internal/domain"
)

// Response represents a standard API response
type Response struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
	Error   any  `json:"error,omitempty"`
}

// JSON sends a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := Response{
		Success: status >= 200 && status < 300,
		Data:    data,
	}

	json.NewEncoder(w).Encode(resp)
}

// Error sends an error response
func Error(w http.ResponseWriter, status int, message any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := Response{
		Success: false,
		Error:   message,
	}

	json.NewEncoder(w).Encode(resp)
}

// NoContent sends a 204 No Content response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Created sends a 201 Created response with data
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

// OK sends a 200 OK response with data
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// BadRequest sends a 400 Bad Request response
func BadRequest(w http.ResponseWriter, message any) {
	Error(w, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 Unauthorized response
func Unauthorized(w http.ResponseWriter, message any) {
	Error(w, http.StatusUnauthorized, message)
}

// Forbidden sends a 403 Forbidden response
func Forbidden(w http.ResponseWriter, message any) {
	Error(w, http.StatusForbidden, message)
}

// NotFound sends a 404 Not Found response
func NotFound(w http.ResponseWriter, message any) {
	Error(w, http.StatusNotFound, message)
}

// InternalError sends a 500 Internal Server Error response
func InternalError(w http.ResponseWriter, message any) {
	Error(w, http.StatusInternalServerError, message)
}

// DomainError maps a domain error family onto its status code. This is
// the only place error-to-status mapping happens; handlers never inspect
// error strings.
func DomainError(w http.ResponseWriter, err error) {
	var (
		authErr       domain.AuthError
		authzErr      domain.AuthorizationError
		inviteErr     domain.InviteError
		constraintErr domain.ConstraintError
		resourceErr   domain.ResourceError
	)

	switch {
	case errors.As(err, &authErr):
		Unauthorized(w, authErr.Error())
	case errors.As(err, &authzErr):
		Forbidden(w, authzErr.Error())
	case errors.As(err, &resourceErr):
		NotFound(w, resourceErr.Error())
	case errors.As(err, &inviteErr):
		// An unknown code is indistinguishable from a deleted one.
		if errors.Is(err, domain.ErrInviteNotFound) {
			NotFound(w, inviteErr.Error())
			return
		}
		BadRequest(w, inviteErr.Error())
	case errors.As(err, &constraintErr):
		BadRequest(w, constraintErr.Error())
	default:
		InternalError(w, "internal server error")
	}
}
