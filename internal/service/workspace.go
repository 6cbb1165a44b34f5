package service

import (
	"context"
	"fmt"
	"time"

	"github.com/drawvault/workspace-api/internal/authz"
	"github.com/drawvault/workspace-api/internal/domain"
	"github.com/google/uuid"
)

// WorkspaceStore is the persistence surface workspaces need.
type WorkspaceStore interface {
	Create(ctx context.Context, workspace *domain.Workspace) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Workspace, error)
	Update(ctx context.Context, id uuid.UUID, update *domain.WorkspaceUpdate) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// Authorizer is the slice of the authorization gate services consume.
type Authorizer interface {
	Authorize(ctx context.Context, identity *domain.Identity, resourceType domain.ResourceType, resourceID uuid.UUID, op authz.Operation) (authz.Decision, error)
}

// WorkspaceService handles workspace operations
type WorkspaceService struct {
	workspaceRepo  WorkspaceStore
	collectionRepo CollectionStore
	gate           Authorizer
}

// NewWorkspaceService creates a new workspace service
func NewWorkspaceService(workspaceRepo WorkspaceStore, collectionRepo CollectionStore, gate Authorizer) *WorkspaceService {
	return &WorkspaceService{
		workspaceRepo:  workspaceRepo,
		collectionRepo: collectionRepo,
		gate:           gate,
	}
}

// Create creates a new workspace owned by the caller
func (s *WorkspaceService) Create(ctx context.Context, identity *domain.Identity, input domain.WorkspaceCreate) (*domain.Workspace, error) {
	now := time.Now()
	workspace := &domain.Workspace{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		OwnerID:     identity.SubjectID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.workspaceRepo.Create(ctx, workspace); err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	return workspace, nil
}

// List retrieves the caller's workspaces
func (s *WorkspaceService) List(ctx context.Context, identity *domain.Identity) ([]domain.Workspace, error) {
	workspaces, err := s.workspaceRepo.ListByOwner(ctx, identity.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	return workspaces, nil
}

// Get retrieves a workspace with its live collections
func (s *WorkspaceService) Get(ctx context.Context, identity *domain.Identity, workspaceID uuid.UUID) (*domain.WorkspaceDetail, error) {
	decision, err := s.gate.Authorize(ctx, identity, domain.ResourceWorkspace, workspaceID, authz.OpRead)
	if err != nil {
		return nil, err
	}
	if err := decision.Err(); err != nil {
		return nil, err
	}

	workspace, err := s.workspaceRepo.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	if workspace == nil {
		return nil, domain.ErrWorkspaceNotFound
	}

	collections, err := s.collectionRepo.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspace collections: %w", err)
	}

	return &domain.WorkspaceDetail{Workspace: *workspace, Collections: collections}, nil
}

// Update updates a workspace (owner only)
func (s *WorkspaceService) Update(ctx context.Context, identity *domain.Identity, workspaceID uuid.UUID, input domain.WorkspaceUpdate) (*domain.Workspace, error) {
	decision, err := s.gate.Authorize(ctx, identity, domain.ResourceWorkspace, workspaceID, authz.OpManage)
	if err != nil {
		return nil, err
	}
	if err := decision.Err(); err != nil {
		return nil, err
	}

	if err := s.workspaceRepo.Update(ctx, workspaceID, &input); err != nil {
		return nil, fmt.Errorf("failed to update workspace: %w", err)
	}

	workspace, err := s.workspaceRepo.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	if workspace == nil {
		return nil, domain.ErrWorkspaceNotFound
	}

	return workspace, nil
}

// Delete soft-deletes a workspace (owner only)
func (s *WorkspaceService) Delete(ctx context.Context, identity *domain.Identity, workspaceID uuid.UUID) error {
	decision, err := s.gate.Authorize(ctx, identity, domain.ResourceWorkspace, workspaceID, authz.OpManage)
	if err != nil {
		return err
	}
	if err := decision.Err(); err != nil {
		return err
	}

	return s.workspaceRepo.SoftDelete(ctx, workspaceID)
}
