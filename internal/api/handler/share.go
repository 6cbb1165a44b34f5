package handler

import (
	"encoding/json"
	"net/http"

	"github.com/drawvault/workspace-api/internal/api/middleware"
	"github.com/drawvault/workspace-api/internal/api/response"
	"github.com/drawvault/workspace-api/internal/domain"
	"github.com/drawvault/workspace-api/internal/service"
)

// ShareHandler handles invite and share endpoints
type ShareHandler struct {
	shareService *service.ShareService
}

// NewShareHandler creates a new share handler
func NewShareHandler(shareService *service.ShareService) *ShareHandler {
	return &ShareHandler{shareService: shareService}
}

// CreateInvite handles invite-code issuance for a collection
func (h *ShareHandler) CreateInvite(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input domain.InviteCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	code, err := h.shareService.Issue(r.Context(), identity, input)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.Created(w, code)
}

// Join handles invite-code redemption
func (h *ShareHandler) Join(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input domain.InviteJoin
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	grant, collection, err := h.shareService.Redeem(r.Context(), identity, input.InviteCode)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.OK(w, map[string]any{
		"share":      grant,
		"collection": collection,
	})
}

// ListSharedWithMe handles listing collections shared to the caller
func (h *ShareHandler) ListSharedWithMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	shared, err := h.shareService.ListSharedWithUser(r.Context(), identity)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.OK(w, shared)
}

// ListCollectionShares handles listing a collection's grants and
// outstanding invites (owner only).
func (h *ShareHandler) ListCollectionShares(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	collectionID, ok := uuidParam(r, "collectionID")
	if !ok {
		response.BadRequest(w, "invalid collection ID")
		return
	}

	shares, err := h.shareService.ListCollectionShares(r.Context(), identity, collectionID)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.OK(w, shares)
}

// UpdatePermission handles changing a grant's permission
func (h *ShareHandler) UpdatePermission(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	shareID, ok := uuidParam(r, "shareID")
	if !ok {
		response.BadRequest(w, "invalid share ID")
		return
	}

	var input domain.SharePermissionUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	grant, err := h.shareService.UpdatePermission(r.Context(), identity, shareID, input.Permission)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.OK(w, grant)
}

// Revoke handles revoking a grant. Owners revoke grants on their
// collections; grantees leave collections shared to them.
func (h *ShareHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	shareID, ok := uuidParam(r, "shareID")
	if !ok {
		response.BadRequest(w, "invalid share ID")
		return
	}

	if err := h.shareService.Revoke(r.Context(), identity, shareID); err != nil {
		response.DomainError(w, err)
		return
	}

	response.NoContent(w)
}
