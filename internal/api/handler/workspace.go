package handler

import (
	"encoding/json"
	"net/http"

	"github.com/drawvault/workspace-api/internal/api/middleware"
	"github.com/drawvault/workspace-api/internal/api/response"
	"github.com/drawvault/workspace-api/internal/domain"
	"github.com/drawvault/workspace-api/internal/service"
)

// WorkspaceHandler handles workspace endpoints
type WorkspaceHandler struct {
	workspaceService *service.WorkspaceService
}

// NewWorkspaceHandler creates a new workspace handler
func NewWorkspaceHandler(workspaceService *service.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService}
}

// Create handles workspace creation
func (h *WorkspaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input domain.WorkspaceCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	workspace, err := h.workspaceService.Create(r.Context(), identity, input)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.Created(w, workspace)
}

// List handles listing the caller's workspaces
func (h *WorkspaceHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	workspaces, err := h.workspaceService.List(r.Context(), identity)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.OK(w, workspaces)
}

// Get handles getting a workspace with its collections
func (h *WorkspaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	workspaceID, ok := uuidParam(r, "workspaceID")
	if !ok {
		response.BadRequest(w, "invalid workspace ID")
		return
	}

	workspace, err := h.workspaceService.Get(r.Context(), identity, workspaceID)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.OK(w, workspace)
}

// Update handles updating a workspace
func (h *WorkspaceHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	workspaceID, ok := uuidParam(r, "workspaceID")
	if !ok {
		response.BadRequest(w, "invalid workspace ID")
		return
	}

	var input domain.WorkspaceUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	workspace, err := h.workspaceService.Update(r.Context(), identity, workspaceID, input)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.OK(w, workspace)
}

// Delete handles deleting a workspace
func (h *WorkspaceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	workspaceID, ok := uuidParam(r, "workspaceID")
	if !ok {
		response.BadRequest(w, "invalid workspace ID")
		return
	}

	if err := h.workspaceService.Delete(r.Context(), identity, workspaceID); err != nil {
		response.DomainError(w, err)
		return
	}

	response.NoContent(w)
}
