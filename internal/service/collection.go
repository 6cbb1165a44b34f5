package service

import (
	"context"
	"fmt"
	"time"

	"github.com/drawvault/workspace-api/internal/authz"
	"github.com/drawvault/workspace-api/internal/domain"
	"github.com/google/uuid"
)

// CollectionStore is the persistence surface collections need.
type CollectionStore interface {
	Create(ctx context.Context, collection *domain.Collection) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Collection, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.CollectionSummary, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.CollectionSummary, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
	Update(ctx context.Context, id uuid.UUID, update *domain.CollectionUpdate) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// CollectionService handles collection operations
type CollectionService struct {
	collectionRepo CollectionStore
	drawingRepo    DrawingStore
	gate           Authorizer
}

// NewCollectionService creates a new collection service
func NewCollectionService(collectionRepo CollectionStore, drawingRepo DrawingStore, gate Authorizer) *CollectionService {
	return &CollectionService{
		collectionRepo: collectionRepo,
		drawingRepo:    drawingRepo,
		gate:           gate,
	}
}

// List retrieves the caller's collections, bootstrapping the default
// collection for first-time users.
func (s *CollectionService) List(ctx context.Context, identity *domain.Identity) ([]domain.CollectionSummary, error) {
	if err := s.ensureDefault(ctx, identity.SubjectID); err != nil {
		return nil, err
	}

	collections, err := s.collectionRepo.ListByOwner(ctx, identity.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}

	return collections, nil
}

func (s *CollectionService) ensureDefault(ctx context.Context, ownerID string) error {
	count, err := s.collectionRepo.CountByOwner(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("failed to count collections: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	return s.collectionRepo.Create(ctx, &domain.Collection{
		ID:        uuid.New(),
		Name:      domain.DefaultCollectionName,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// Get retrieves a collection with its drawings, for the owner or a
// grantee.
func (s *CollectionService) Get(ctx context.Context, identity *domain.Identity, collectionID uuid.UUID) (*domain.CollectionDetail, error) {
	decision, err := s.gate.Authorize(ctx, identity, domain.ResourceCollection, collectionID, authz.OpRead)
	if err != nil {
		return nil, err
	}
	if err := decision.Err(); err != nil {
		return nil, err
	}

	collection, err := s.collectionRepo.GetByID(ctx, collectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	if collection == nil {
		return nil, domain.ErrCollectionNotFound
	}

	drawings, err := s.drawingRepo.ListByCollection(ctx, collectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list drawings: %w", err)
	}

	return &domain.CollectionDetail{
		Collection: *collection,
		Drawings:   drawings,
		IsShared:   !decision.Owner,
		Permission: decision.Permission,
	}, nil
}

// Create creates a collection owned by the caller, optionally inside
// one of the caller's workspaces.
func (s *CollectionService) Create(ctx context.Context, identity *domain.Identity, input domain.CollectionCreate) (*domain.Collection, error) {
	if input.WorkspaceID != nil {
		decision, err := s.gate.Authorize(ctx, identity, domain.ResourceWorkspace, *input.WorkspaceID, authz.OpManage)
		if err != nil {
			return nil, err
		}
		if err := decision.Err(); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	collection := &domain.Collection{
		ID:          uuid.New(),
		Name:        input.Name,
		OwnerID:     identity.SubjectID,
		WorkspaceID: input.WorkspaceID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.collectionRepo.Create(ctx, collection); err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	return collection, nil
}

// Update renames a collection (owner only)
func (s *CollectionService) Update(ctx context.Context, identity *domain.Identity, collectionID uuid.UUID, input domain.CollectionUpdate) (*domain.Collection, error) {
	decision, err := s.gate.Authorize(ctx, identity, domain.ResourceCollection, collectionID, authz.OpManage)
	if err != nil {
		return nil, err
	}
	if err := decision.Err(); err != nil {
		return nil, err
	}

	if err := s.collectionRepo.Update(ctx, collectionID, &input); err != nil {
		return nil, fmt.Errorf("failed to update collection: %w", err)
	}

	collection, err := s.collectionRepo.GetByID(ctx, collectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	if collection == nil {
		return nil, domain.ErrCollectionNotFound
	}

	return collection, nil
}

// Delete soft-deletes a collection (owner only). A user's last
// remaining collection cannot be deleted.
func (s *CollectionService) Delete(ctx context.Context, identity *domain.Identity, collectionID uuid.UUID) error {
	decision, err := s.gate.Authorize(ctx, identity, domain.ResourceCollection, collectionID, authz.OpManage)
	if err != nil {
		return err
	}
	if err := decision.Err(); err != nil {
		return err
	}

	count, err := s.collectionRepo.CountByOwner(ctx, identity.SubjectID)
	if err != nil {
		return fmt.Errorf("failed to count collections: %w", err)
	}
	if count <= 1 {
		return domain.ErrLastCollection
	}

	return s.collectionRepo.SoftDelete(ctx, collectionID)
}
