package handler

import (
	"encoding/json"
	"net/http"

	"github.com/drawvault/workspace-api/internal/api/middleware"
	"github.com/drawvault/workspace-api/internal/api/response"
	"github.com/drawvault/workspace-api/internal/domain"
	"github.com/drawvault/workspace-api/internal/service"
)

// DrawingHandler handles drawing endpoints
type DrawingHandler struct {
	drawingService *service.DrawingService
}

// NewDrawingHandler creates a new drawing handler
func NewDrawingHandler(drawingService *service.DrawingService) *DrawingHandler {
	return &DrawingHandler{drawingService: drawingService}
}

// ListByCollection handles listing a collection's drawings without
// their content payloads.
func (h *DrawingHandler) ListByCollection(w http.ResponseWriter, r *http.Request) {
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

	drawings, err := h.drawingService.ListByCollection(r.Context(), identity, collectionID)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.OK(w, drawings)
}

// Get handles getting a drawing with its content
func (h *DrawingHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	drawingID, ok := uuidParam(r, "drawingID")
	if !ok {
		response.BadRequest(w, "invalid drawing ID")
		return
	}

	drawing, err := h.drawingService.Get(r.Context(), identity, drawingID)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.OK(w, drawing)
}

// Create handles drawing creation
func (h *DrawingHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input domain.DrawingCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	drawing, err := h.drawingService.Create(r.Context(), identity, input)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.Created(w, drawing)
}

// Update handles content edits and owner-only moves between collections
func (h *DrawingHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	drawingID, ok := uuidParam(r, "drawingID")
	if !ok {
		response.BadRequest(w, "invalid drawing ID")
		return
	}

	var input domain.DrawingUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	drawing, err := h.drawingService.Update(r.Context(), identity, drawingID, input)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.OK(w, drawing)
}

// Delete handles deleting a drawing
func (h *DrawingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	drawingID, ok := uuidParam(r, "drawingID")
	if !ok {
		response.BadRequest(w, "invalid drawing ID")
		return
	}

	if err := h.drawingService.Delete(r.Context(), identity, drawingID); err != nil {
		response.DomainError(w, err)
		return
	}

	response.NoContent(w)
}
