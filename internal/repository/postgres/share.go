package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/drawvault/workspace-api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ShareRepository handles share grants and invite codes
type ShareRepository struct {
	db *DB
}

// NewShareRepository creates a new share repository
func NewShareRepository(db *DB) *ShareRepository {
	return &ShareRepository{db: db}
}

const grantColumns = `id, collection_id, owner_id, grantee_id, permission, status, expires_at, created_at, updated_at, deleted_at`

func scanGrant(row pgx.Row) (*domain.ShareGrant, error) {
	var grant domain.ShareGrant
	err := row.Scan(
		&grant.ID,
		&grant.CollectionID,
		&grant.OwnerID,
		&grant.GranteeID,
		&grant.Permission,
		&grant.Status,
		&grant.ExpiresAt,
		&grant.CreatedAt,
		&grant.UpdatedAt,
		&grant.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan share grant: %w", err)
	}
	return &grant, nil
}

// ActiveGrant returns the accepted, non-deleted grant for a
// (collection, grantee) pair, or nil. Expiry is evaluated by the
// authorization gate, not here.
func (r *ShareRepository) ActiveGrant(ctx context.Context, collectionID uuid.UUID, granteeID string) (*domain.ShareGrant, error) {
	query := `
		SELECT ` + grantColumns + `
		FROM collection_shares
		WHERE collection_id = $1 AND grantee_id = $2 AND status = 'accepted' AND deleted_at IS NULL
	`

	return scanGrant(r.db.Pool.QueryRow(ctx, query, collectionID, granteeID))
}

// GetGrant retrieves a live grant by ID, or nil
func (r *ShareRepository) GetGrant(ctx context.Context, id uuid.UUID) (*domain.ShareGrant, error) {
	query := `
		SELECT ` + grantColumns + `
		FROM collection_shares
		WHERE id = $1 AND deleted_at IS NULL
	`

	return scanGrant(r.db.Pool.QueryRow(ctx, query, id))
}

// ListByCollection retrieves the accepted grants an owner has issued
// for a collection.
func (r *ShareRepository) ListByCollection(ctx context.Context, collectionID uuid.UUID, ownerID string) ([]domain.ShareGrant, error) {
	query := `
		SELECT ` + grantColumns + `
		FROM collection_shares
		WHERE collection_id = $1 AND owner_id = $2 AND status = 'accepted' AND deleted_at IS NULL
		ORDER BY created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, collectionID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list share grants: %w", err)
	}
	defer rows.Close()

	var grants []domain.ShareGrant
	for rows.Next() {
		grant, err := scanGrant(rows)
		if err != nil {
			return nil, err
		}
		grants = append(grants, *grant)
	}

	return grants, rows.Err()
}

// ListSharedWithUser retrieves the collections shared to a grantee,
// with the grant metadata and drawing counts the listing surface needs.
func (r *ShareRepository) ListSharedWithUser(ctx context.Context, granteeID string) ([]domain.SharedCollection, error) {
	query := `
		SELECT c.id, c.name, c.owner_id, c.workspace_id, c.created_at, c.updated_at,
		       COUNT(d.id) FILTER (WHERE d.deleted_at IS NULL),
		       s.permission, s.owner_id, s.id
		FROM collection_shares s
		JOIN collections c ON c.id = s.collection_id AND c.deleted_at IS NULL
		LEFT JOIN drawings d ON d.collection_id = c.id
		WHERE s.grantee_id = $1 AND s.status = 'accepted' AND s.deleted_at IS NULL
		  AND (s.expires_at IS NULL OR s.expires_at > NOW())
		GROUP BY c.id, s.permission, s.owner_id, s.id
		ORDER BY c.created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, granteeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shared collections: %w", err)
	}
	defer rows.Close()

	var shared []domain.SharedCollection
	for rows.Next() {
		var sc domain.SharedCollection
		if err := rows.Scan(
			&sc.ID,
			&sc.Name,
			&sc.OwnerID,
			&sc.WorkspaceID,
			&sc.CreatedAt,
			&sc.UpdatedAt,
			&sc.DrawingCount,
			&sc.Permission,
			&sc.SharedBy,
			&sc.ShareID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan shared collection: %w", err)
		}
		shared = append(shared, sc)
	}

	return shared, rows.Err()
}

// UpdatePermission changes a grant's permission
func (r *ShareRepository) UpdatePermission(ctx context.Context, id uuid.UUID, permission domain.Permission) error {
	query := `UPDATE collection_shares SET permission = $2, updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	_, err := r.db.Pool.Exec(ctx, query, id, permission)
	if err != nil {
		return fmt.Errorf("failed to update share permission: %w", err)
	}

	return nil
}

// SoftDelete revokes a grant
func (r *ShareRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE collection_shares SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	_, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to revoke share: %w", err)
	}

	return nil
}

// RedeemGrant materializes an invite code into an accepted grant inside
// a single transaction. The check-then-write runs with the existing row
// locked, and the partial unique index on accepted grants turns a lost
// race into ErrInviteAlreadyUsed rather than a duplicate.
func (r *ShareRepository) RedeemGrant(ctx context.Context, code *domain.InviteCode, granteeID string) (*domain.ShareGrant, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin redeem transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock any existing grant for this pair, soft-deleted ones included,
	// so a revoked or lapsed grant is reactivated instead of duplicated.
	existing, err := scanGrant(tx.QueryRow(ctx, `
		SELECT `+grantColumns+`
		FROM collection_shares
		WHERE collection_id = $1 AND grantee_id = $2
		ORDER BY created_at DESC
		LIMIT 1
		FOR UPDATE
	`, code.ResourceID, granteeID))
	if err != nil {
		return nil, err
	}

	var grant *domain.ShareGrant
	if existing != nil {
		// Only a currently live grant blocks redemption; an expired one
		// is already absent to the gate and a fresh code revives it.
		if existing.Active(time.Now()) {
			return nil, domain.ErrInviteAlreadyUsed
		}
		row := tx.QueryRow(ctx, `
			UPDATE collection_shares
			SET status = 'accepted', permission = $2, expires_at = $3, deleted_at = NULL, updated_at = NOW()
			WHERE id = $1
			RETURNING `+grantColumns+`
		`, existing.ID, code.Permission, code.ExpiresAt)
		if grant, err = scanGrant(row); err != nil {
			return nil, err
		}
	} else {
		row := tx.QueryRow(ctx, `
			INSERT INTO collection_shares (id, collection_id, owner_id, grantee_id, permission, status, expires_at, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, 'accepted', $6, NOW(), NOW())
			RETURNING `+grantColumns+`
		`, uuid.New(), code.ResourceID, code.IssuerID, granteeID, code.Permission, code.ExpiresAt)
		if grant, err = scanGrant(row); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return nil, domain.ErrInviteAlreadyUsed
			}
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit redeem transaction: %w", err)
	}

	return grant, nil
}
