package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/drawvault/workspace-api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// HierarchyRepository answers the ownership and parentage questions the
// authorization gate asks. Soft-deleted resources are reported as not
// found so deletion stays indistinguishable from absence.
type HierarchyRepository struct {
	db *DB
}

// NewHierarchyRepository creates a new hierarchy repository
func NewHierarchyRepository(db *DB) *HierarchyRepository {
	return &HierarchyRepository{db: db}
}

// WorkspaceOwner resolves a live workspace's owner
func (r *HierarchyRepository) WorkspaceOwner(ctx context.Context, id uuid.UUID) (string, error) {
	query := `SELECT owner_id FROM workspaces WHERE id = $1 AND deleted_at IS NULL`

	var ownerID string
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrWorkspaceNotFound
		}
		return "", fmt.Errorf("failed to resolve workspace owner: %w", err)
	}

	return ownerID, nil
}

// CollectionOwner resolves a live collection's owner
func (r *HierarchyRepository) CollectionOwner(ctx context.Context, id uuid.UUID) (string, error) {
	query := `SELECT owner_id FROM collections WHERE id = $1 AND deleted_at IS NULL`

	var ownerID string
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrCollectionNotFound
		}
		return "", fmt.Errorf("failed to resolve collection owner: %w", err)
	}

	return ownerID, nil
}

// DrawingOwner resolves a live drawing's owner and parent collection
func (r *HierarchyRepository) DrawingOwner(ctx context.Context, id uuid.UUID) (string, *uuid.UUID, error) {
	query := `SELECT owner_id, collection_id FROM drawings WHERE id = $1 AND deleted_at IS NULL`

	var (
		ownerID      string
		collectionID *uuid.UUID
	)
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(&ownerID, &collectionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil, domain.ErrDrawingNotFound
		}
		return "", nil, fmt.Errorf("failed to resolve drawing owner: %w", err)
	}

	return ownerID, collectionID, nil
}
