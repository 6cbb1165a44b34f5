package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/drawvault/workspace-api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// InviteRepository handles the invite-code ledger. Codes are written
// once and never mutated; redemption only reads them.
type InviteRepository struct {
	db *DB
}

// NewInviteRepository creates a new invite repository
func NewInviteRepository(db *DB) *InviteRepository {
	return &InviteRepository{db: db}
}

// Create persists a freshly issued invite code
func (r *InviteRepository) Create(ctx context.Context, code *domain.InviteCode) error {
	query := `
		INSERT INTO invite_codes (code, resource_type, resource_id, issuer_id, permission, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		code.Code,
		code.ResourceType,
		code.ResourceID,
		code.IssuerID,
		code.Permission,
		code.ExpiresAt,
		code.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create invite code: %w", err)
	}

	return nil
}

// GetByCode looks up an invite code, or nil when absent
func (r *InviteRepository) GetByCode(ctx context.Context, code string) (*domain.InviteCode, error) {
	query := `
		SELECT code, resource_type, resource_id, issuer_id, permission, expires_at, created_at
		FROM invite_codes
		WHERE code = $1
	`

	var invite domain.InviteCode
	err := r.db.Pool.QueryRow(ctx, query, code).Scan(
		&invite.Code,
		&invite.ResourceType,
		&invite.ResourceID,
		&invite.IssuerID,
		&invite.Permission,
		&invite.ExpiresAt,
		&invite.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get invite code: %w", err)
	}

	return &invite, nil
}

// ListByResource retrieves the outstanding codes issued for a resource,
// newest first. Lets an owner enumerate not-yet-redeemed invitations.
func (r *InviteRepository) ListByResource(ctx context.Context, resourceID uuid.UUID) ([]domain.InviteCode, error) {
	query := `
		SELECT code, resource_type, resource_id, issuer_id, permission, expires_at, created_at
		FROM invite_codes
		WHERE resource_id = $1 AND (expires_at IS NULL OR expires_at > NOW())
		ORDER BY created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, resourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invite codes: %w", err)
	}
	defer rows.Close()

	var invites []domain.InviteCode
	for rows.Next() {
		var invite domain.InviteCode
		if err := rows.Scan(
			&invite.Code,
			&invite.ResourceType,
			&invite.ResourceID,
			&invite.IssuerID,
			&invite.Permission,
			&invite.ExpiresAt,
			&invite.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan invite code: %w", err)
		}
		invites = append(invites, invite)
	}

	return invites, rows.Err()
}
