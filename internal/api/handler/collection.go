package handler

import (
	"encoding/json"
	"net/http"

	"github.com/drawvault/workspace-api/internal/api/middleware"
	"github.com/drawvault/workspace-api/internal/api/response"
	"github.com/drawvault/workspace-api/internal/domain"
	"github.com/drawvault/workspace-api/internal/service"
)

// CollectionHandler handles collection endpoints
type CollectionHandler struct {
	collectionService *service.CollectionService
}

// NewCollectionHandler creates a new collection handler
func NewCollectionHandler(collectionService *service.CollectionService) *CollectionHandler {
	return &CollectionHandler{collectionService: collectionService}
}

// List handles listing the caller's collections. First-time callers get
// their default collection created here.
func (h *CollectionHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	collections, err := h.collectionService.List(r.Context(), identity)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.OK(w, collections)
}

// Get handles getting a collection with its drawings
func (h *CollectionHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	collection, err := h.collectionService.Get(r.Context(), identity, collectionID)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.OK(w, collection)
}

// Create handles collection creation
func (h *CollectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input domain.CollectionCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	collection, err := h.collectionService.Create(r.Context(), identity, input)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.Created(w, collection)
}

// Update handles renaming a collection
func (h *CollectionHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var input domain.CollectionUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	collection, err := h.collectionService.Update(r.Context(), identity, collectionID, input)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.OK(w, collection)
}

// Delete handles deleting a collection
func (h *CollectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.collectionService.Delete(r.Context(), identity, collectionID); err != nil {
		response.DomainError(w, err)
		return
	}

	response.NoContent(w)
}
