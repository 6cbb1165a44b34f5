package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/drawvault/workspace-api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DrawingRepository handles drawing data access
type DrawingRepository struct {
	db *DB
}

// NewDrawingRepository creates a new drawing repository
func NewDrawingRepository(db *DB) *DrawingRepository {
	return &DrawingRepository{db: db}
}

// Create creates a new drawing
func (r *DrawingRepository) Create(ctx context.Context, drawing *domain.Drawing) error {
	query := `
		INSERT INTO drawings (id, name, content, thumbnail_url, owner_id, collection_id, last_modified)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		drawing.ID,
		drawing.Name,
		drawing.Content,
		drawing.ThumbnailURL,
		drawing.OwnerID,
		drawing.CollectionID,
		drawing.LastModified,
	)
	if err != nil {
		return fmt.Errorf("failed to create drawing: %w", err)
	}

	return nil
}

// GetByID retrieves a live drawing by ID. Returns nil when the drawing
// is absent or soft-deleted.
func (r *DrawingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Drawing, error) {
	query := `
		SELECT id, name, content, thumbnail_url, owner_id, collection_id, last_modified
		FROM drawings
		WHERE id = $1 AND deleted_at IS NULL
	`

	var drawing domain.Drawing
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&drawing.ID,
		&drawing.Name,
		&drawing.Content,
		&drawing.ThumbnailURL,
		&drawing.OwnerID,
		&drawing.CollectionID,
		&drawing.LastModified,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get drawing: %w", err)
	}

	return &drawing, nil
}

// ListByCollection retrieves the live drawings of a collection, most
// recently modified first. Content is omitted from listings.
func (r *DrawingRepository) ListByCollection(ctx context.Context, collectionID uuid.UUID) ([]domain.Drawing, error) {
	query := `
		SELECT id, name, thumbnail_url, owner_id, collection_id, last_modified
		FROM drawings
		WHERE collection_id = $1 AND deleted_at IS NULL
		ORDER BY last_modified DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, collectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list drawings: %w", err)
	}
	defer rows.Close()

	var drawings []domain.Drawing
	for rows.Next() {
		var drawing domain.Drawing
		if err := rows.Scan(
			&drawing.ID,
			&drawing.Name,
			&drawing.ThumbnailURL,
			&drawing.OwnerID,
			&drawing.CollectionID,
			&drawing.LastModified,
		); err != nil {
			return nil, fmt.Errorf("failed to scan drawing: %w", err)
		}
		drawings = append(drawings, drawing)
	}

	return drawings, rows.Err()
}

// Update updates a drawing's fields, including its parent collection
// when the caller has already cleared the move with the owner rule.
func (r *DrawingRepository) Update(ctx context.Context, id uuid.UUID, update *domain.DrawingUpdate) error {
	query := `
		UPDATE drawings
		SET name = COALESCE($2, name),
		    content = COALESCE($3, content),
		    thumbnail_url = COALESCE($4, thumbnail_url),
		    collection_id = COALESCE($5, collection_id),
		    last_modified = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	_, err := r.db.Pool.Exec(ctx, query, id, update.Name, update.Content, update.ThumbnailURL, update.CollectionID)
	if err != nil {
		return fmt.Errorf("failed to update drawing: %w", err)
	}

	return nil
}

// SoftDelete marks a drawing deleted
func (r *DrawingRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE drawings SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	_, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete drawing: %w", err)
	}

	return nil
}
