package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/drawvault/workspace-api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CollectionRepository handles collection data access
type CollectionRepository struct {
	db *DB
}

// NewCollectionRepository creates a new collection repository
func NewCollectionRepository(db *DB) *CollectionRepository {
	return &CollectionRepository{db: db}
}

// Create creates a new collection
func (r *CollectionRepository) Create(ctx context.Context, collection *domain.Collection) error {
	query := `
		INSERT INTO collections (id, name, owner_id, workspace_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		collection.ID,
		collection.Name,
		collection.OwnerID,
		collection.WorkspaceID,
		collection.CreatedAt,
		collection.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	return nil
}

// GetByID retrieves a live collection by ID. Returns nil when the
// collection is absent or soft-deleted.
func (r *CollectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Collection, error) {
	query := `
		SELECT id, name, owner_id, workspace_id, created_at, updated_at
		FROM collections
		WHERE id = $1 AND deleted_at IS NULL
	`

	var collection domain.Collection
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&collection.ID,
		&collection.Name,
		&collection.OwnerID,
		&collection.WorkspaceID,
		&collection.CreatedAt,
		&collection.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}

	return &collection, nil
}

// ListByOwner retrieves all live collections owned by a user, with
// drawing counts, newest first.
func (r *CollectionRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.CollectionSummary, error) {
	query := `
		SELECT c.id, c.name, c.owner_id, c.workspace_id, c.created_at, c.updated_at,
		       COUNT(d.id) FILTER (WHERE d.deleted_at IS NULL)
		FROM collections c
		LEFT JOIN drawings d ON d.collection_id = c.id
		WHERE c.owner_id = $1 AND c.deleted_at IS NULL
		GROUP BY c.id
		ORDER BY c.created_at DESC
	`

	return r.querySummaries(ctx, query, ownerID)
}

// ListByWorkspace retrieves the live collections of a workspace with
// drawing counts.
func (r *CollectionRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.CollectionSummary, error) {
	query := `
		SELECT c.id, c.name, c.owner_id, c.workspace_id, c.created_at, c.updated_at,
		       COUNT(d.id) FILTER (WHERE d.deleted_at IS NULL)
		FROM collections c
		LEFT JOIN drawings d ON d.collection_id = c.id
		WHERE c.workspace_id = $1 AND c.deleted_at IS NULL
		GROUP BY c.id
		ORDER BY c.created_at DESC
	`

	return r.querySummaries(ctx, query, workspaceID)
}

func (r *CollectionRepository) querySummaries(ctx context.Context, query string, arg any) ([]domain.CollectionSummary, error) {
	rows, err := r.db.Pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	defer rows.Close()

	var collections []domain.CollectionSummary
	for rows.Next() {
		var c domain.CollectionSummary
		if err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.OwnerID,
			&c.WorkspaceID,
			&c.CreatedAt,
			&c.UpdatedAt,
			&c.DrawingCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan collection: %w", err)
		}
		collections = append(collections, c)
	}

	return collections, rows.Err()
}

// CountByOwner counts a user's live collections
func (r *CollectionRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	query := `SELECT COUNT(*) FROM collections WHERE owner_id = $1 AND deleted_at IS NULL`

	var count int
	if err := r.db.Pool.QueryRow(ctx, query, ownerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count collections: %w", err)
	}

	return count, nil
}

// Update renames a collection
func (r *CollectionRepository) Update(ctx context.Context, id uuid.UUID, update *domain.CollectionUpdate) error {
	query := `
		UPDATE collections
		SET name = COALESCE($2, name),
		    updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	_, err := r.db.Pool.Exec(ctx, query, id, update.Name)
	if err != nil {
		return fmt.Errorf("failed to update collection: %w", err)
	}

	return nil
}

// SoftDelete marks a collection deleted
func (r *CollectionRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE collections SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	_, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}

	return nil
}
