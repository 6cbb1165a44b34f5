package service

import (
	"context"
	"fmt"
	"time"

	"github.com/drawvault/workspace-api/internal/authz"
	"github.com/drawvault/workspace-api/internal/domain"
	"github.com/google/uuid"
)

// DrawingStore is the persistence surface drawings need.
type DrawingStore interface {
	Create(ctx context.Context, drawing *domain.Drawing) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Drawing, error)
	ListByCollection(ctx context.Context, collectionID uuid.UUID) ([]domain.Drawing, error)
	Update(ctx context.Context, id uuid.UUID, update *domain.DrawingUpdate) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// DrawingService handles drawing operations
type DrawingService struct {
	drawingRepo    DrawingStore
	collectionRepo CollectionStore
	gate           Authorizer
}

// NewDrawingService creates a new drawing service
func NewDrawingService(drawingRepo DrawingStore, collectionRepo CollectionStore, gate Authorizer) *DrawingService {
	return &DrawingService{
		drawingRepo:    drawingRepo,
		collectionRepo: collectionRepo,
		gate:           gate,
	}
}

// ListByCollection retrieves a collection's drawings for the owner or
// a grantee.
func (s *DrawingService) ListByCollection(ctx context.Context, identity *domain.Identity, collectionID uuid.UUID) ([]domain.Drawing, error) {
	decision, err := s.gate.Authorize(ctx, identity, domain.ResourceCollection, collectionID, authz.OpRead)
	if err != nil {
		return nil, err
	}
	if err := decision.Err(); err != nil {
		return nil, err
	}

	drawings, err := s.drawingRepo.ListByCollection(ctx, collectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list drawings: %w", err)
	}

	return drawings, nil
}

// Get retrieves a drawing with its content
func (s *DrawingService) Get(ctx context.Context, identity *domain.Identity, drawingID uuid.UUID) (*domain.Drawing, error) {
	decision, err := s.gate.Authorize(ctx, identity, domain.ResourceDrawing, drawingID, authz.OpRead)
	if err != nil {
		return nil, err
	}
	if err := decision.Err(); err != nil {
		return nil, err
	}

	drawing, err := s.drawingRepo.GetByID(ctx, drawingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get drawing: %w", err)
	}
	if drawing == nil {
		return nil, domain.ErrDrawingNotFound
	}

	return drawing, nil
}

// Create creates a drawing. Filing it into a collection requires write
// access there, so grantees with edit permission can add drawings to a
// shared collection.
func (s *DrawingService) Create(ctx context.Context, identity *domain.Identity, input domain.DrawingCreate) (*domain.Drawing, error) {
	if input.CollectionID != nil {
		decision, err := s.gate.Authorize(ctx, identity, domain.ResourceCollection, *input.CollectionID, authz.OpWrite)
		if err != nil {
			return nil, err
		}
		if err := decision.Err(); err != nil {
			return nil, err
		}
	}

	drawing := &domain.Drawing{
		ID:           uuid.New(),
		Name:         input.Name,
		Content:      input.Content,
		ThumbnailURL: input.ThumbnailURL,
		OwnerID:      identity.SubjectID,
		CollectionID: input.CollectionID,
		LastModified: time.Now(),
	}

	if err := s.drawingRepo.Create(ctx, drawing); err != nil {
		return nil, fmt.Errorf("failed to create drawing: %w", err)
	}

	return drawing, nil
}

// Update updates a drawing. Content edits need write access; moving a
// drawing to another collection is owner-only, and only into a
// collection the owner also owns, because a move changes which grants
// cover the drawing.
func (s *DrawingService) Update(ctx context.Context, identity *domain.Identity, drawingID uuid.UUID, input domain.DrawingUpdate) (*domain.Drawing, error) {
	decision, err := s.gate.Authorize(ctx, identity, domain.ResourceDrawing, drawingID, authz.OpWrite)
	if err != nil {
		return nil, err
	}
	if err := decision.Err(); err != nil {
		return nil, err
	}

	drawing, err := s.drawingRepo.GetByID(ctx, drawingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get drawing: %w", err)
	}
	if drawing == nil {
		return nil, domain.ErrDrawingNotFound
	}

	moving := input.CollectionID != nil &&
		(drawing.CollectionID == nil || *input.CollectionID != *drawing.CollectionID)
	if moving {
		if identity.SubjectID != drawing.OwnerID {
			return nil, domain.ErrNotOwner
		}
		target, err := s.collectionRepo.GetByID(ctx, *input.CollectionID)
		if err != nil {
			return nil, fmt.Errorf("failed to get target collection: %w", err)
		}
		if target == nil || target.OwnerID != drawing.OwnerID {
			return nil, domain.ErrCollectionNotFound
		}
	} else {
		input.CollectionID = nil
	}

	if err := s.drawingRepo.Update(ctx, drawingID, &input); err != nil {
		return nil, fmt.Errorf("failed to update drawing: %w", err)
	}

	updated, err := s.drawingRepo.GetByID(ctx, drawingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get drawing: %w", err)
	}
	if updated == nil {
		return nil, domain.ErrDrawingNotFound
	}

	return updated, nil
}

// Delete soft-deletes a drawing (owner only)
func (s *DrawingService) Delete(ctx context.Context, identity *domain.Identity, drawingID uuid.UUID) error {
	decision, err := s.gate.Authorize(ctx, identity, domain.ResourceDrawing, drawingID, authz.OpManage)
	if err != nil {
		return err
	}
	if err := decision.Err(); err != nil {
		return err
	}

	return s.drawingRepo.SoftDelete(ctx, drawingID)
}
