package response_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/drawvault/workspace-api/internal/api/response"
	"github.com/drawvault/workspace-api/internal/domain"
)

func TestDomainError_StatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"malformed token", domain.ErrTokenMalformed, http.StatusUnauthorized},
		{"expired token", domain.ErrTokenExpired, http.StatusUnauthorized},
		{"key unavailable", domain.ErrKeyUnavailable, http.StatusUnauthorized},
		{"no access", domain.ErrNoAccess, http.StatusForbidden},
		{"insufficient permission", domain.ErrInsufficientPermission, http.StatusForbidden},
		{"not owner", domain.ErrNotOwner, http.StatusForbidden},
		{"workspace not found", domain.ErrWorkspaceNotFound, http.StatusNotFound},
		{"collection not found", domain.ErrCollectionNotFound, http.StatusNotFound},
		{"drawing not found", domain.ErrDrawingNotFound, http.StatusNotFound},
		{"share not found", domain.ErrShareNotFound, http.StatusNotFound},
		{"invite not found", domain.ErrInviteNotFound, http.StatusNotFound},
		{"invite expired", domain.ErrInviteExpired, http.StatusBadRequest},
		{"self join", domain.ErrInviteSelfJoin, http.StatusBadRequest},
		{"already used", domain.ErrInviteAlreadyUsed, http.StatusBadRequest},
		{"wrong invite type", domain.ErrInviteTypeInvalid, http.StatusBadRequest},
		{"last collection", domain.ErrLastCollection, http.StatusBadRequest},
		{"unknown error", fmt.Errorf("pg: connection refused"), http.StatusInternalServerError},
		{"wrapped domain error", fmt.Errorf("redeem: %w", domain.ErrInviteExpired), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			response.DomainError(rec, tt.err)
			if rec.Code != tt.want {
				t.Errorf("DomainError(%v) status = %d, want %d", tt.err, rec.Code, tt.want)
			}
		})
	}
}

func TestDomainError_HidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	response.DomainError(rec, fmt.Errorf("pg: password authentication failed for user"))

	body := rec.Body.String()
	if body == "" {
		t.Fatal("expected a body")
	}
	if strings.Contains(body, "password") || strings.Contains(body, "pg:") {
		t.Errorf("internal detail leaked into response: %s", body)
	}
}
