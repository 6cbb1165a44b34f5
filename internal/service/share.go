package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/drawvault/workspace-api/internal/domain"
	"github.com/drawvault/workspace-api/internal/repository/mongo"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// GrantStore is the persistence surface share grants need.
type GrantStore interface {
	ActiveGrant(ctx context.Context, collectionID uuid.UUID, granteeID string) (*domain.ShareGrant, error)
	GetGrant(ctx context.Context, id uuid.UUID) (*domain.ShareGrant, error)
	ListByCollection(ctx context.Context, collectionID uuid.UUID, ownerID string) ([]domain.ShareGrant, error)
	ListSharedWithUser(ctx context.Context, granteeID string) ([]domain.SharedCollection, error)
	UpdatePermission(ctx context.Context, id uuid.UUID, permission domain.Permission) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	RedeemGrant(ctx context.Context, code *domain.InviteCode, granteeID string) (*domain.ShareGrant, error)
}

// InviteStore is the persistence surface the invite-code ledger needs.
type InviteStore interface {
	Create(ctx context.Context, code *domain.InviteCode) error
	GetByCode(ctx context.Context, code string) (*domain.InviteCode, error)
	ListByResource(ctx context.Context, resourceID uuid.UUID) ([]domain.InviteCode, error)
}

// SharedCache caches per-user shared-collection listings.
type SharedCache interface {
	Get(ctx context.Context, userID string) ([]domain.SharedCollection, error)
	Set(ctx context.Context, userID string, shared []domain.SharedCollection) error
	Invalidate(ctx context.Context, userID string) error
}

// CollectionShares is what an owner sees for one collection: the
// accepted grants plus the outstanding, not-yet-redeemed invite codes.
type CollectionShares struct {
	Grants  []domain.ShareGrant `json:"grants"`
	Invites []domain.InviteCode `json:"invites"`
}

// ShareService is the invite ledger: it issues invite codes and redeems
// them into grants. Codes are immutable and stay redeemable by further
// users until they expire.
type ShareService struct {
	grantRepo      GrantStore
	inviteRepo     InviteStore
	collectionRepo CollectionStore
	cache          SharedCache
	audit          *mongo.AuditLog
}

// NewShareService creates a new share service
func NewShareService(grantRepo GrantStore, inviteRepo InviteStore, collectionRepo CollectionStore, cache SharedCache, audit *mongo.AuditLog) *ShareService {
	return &ShareService{
		grantRepo:      grantRepo,
		inviteRepo:     inviteRepo,
		collectionRepo: collectionRepo,
		cache:          cache,
		audit:          audit,
	}
}

// generateInviteCode returns 128 bits of hex-encoded entropy; collision
// probability is negligible at that size.
func generateInviteCode() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate invite code: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Issue creates an invite code for a collection the caller owns. A
// caller who is not the owner learns nothing beyond "not found".
func (s *ShareService) Issue(ctx context.Context, identity *domain.Identity, input domain.InviteCreate) (*domain.InviteCode, error) {
	collection, err := s.collectionRepo.GetByID(ctx, input.CollectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	if collection == nil || collection.OwnerID != identity.SubjectID {
		return nil, domain.ErrCollectionNotFound
	}

	codeStr, err := generateInviteCode()
	if err != nil {
		return nil, err
	}

	permission := input.Permission
	if permission == "" {
		permission = domain.PermissionView
	}

	var expiresAt *time.Time
	if input.ExpiresInDays > 0 {
		t := time.Now().AddDate(0, 0, input.ExpiresInDays)
		expiresAt = &t
	}

	code := &domain.InviteCode{
		Code:         codeStr,
		ResourceType: domain.ResourceCollection,
		ResourceID:   collection.ID,
		IssuerID:     identity.SubjectID,
		Permission:   permission,
		ExpiresAt:    expiresAt,
		CreatedAt:    time.Now(),
	}

	if err := s.inviteRepo.Create(ctx, code); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, mongo.AuditEntry{
		Action:       mongo.ActionCreateInvite,
		UserID:       identity.SubjectID,
		CollectionID: collection.ID.String(),
		InviteCode:   code.Code,
	})

	return code, nil
}

// Redeem materializes an invite code into an accepted grant for the
// caller. The code itself is not consumed.
func (s *ShareService) Redeem(ctx context.Context, identity *domain.Identity, codeStr string) (*domain.ShareGrant, *domain.Collection, error) {
	code, err := s.inviteRepo.GetByCode(ctx, codeStr)
	if err != nil {
		return nil, nil, err
	}
	if code == nil {
		return nil, nil, domain.ErrInviteNotFound
	}
	// An expired code is reported as expired even when the resource is
	// still alive and well.
	if code.Expired(time.Now()) {
		return nil, nil, domain.ErrInviteExpired
	}
	if code.IssuerID == identity.SubjectID {
		return nil, nil, domain.ErrInviteSelfJoin
	}
	if code.ResourceType != domain.ResourceCollection {
		return nil, nil, domain.ErrInviteTypeInvalid
	}

	collection, err := s.collectionRepo.GetByID(ctx, code.ResourceID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get collection: %w", err)
	}
	if collection == nil {
		return nil, nil, domain.ErrCollectionNotFound
	}

	grant, err := s.grantRepo.RedeemGrant(ctx, code, identity.SubjectID)
	if err != nil {
		return nil, nil, err
	}

	s.invalidate(ctx, identity.SubjectID)
	s.audit.Record(ctx, mongo.AuditEntry{
		Action:       mongo.ActionJoin,
		UserID:       identity.SubjectID,
		CollectionID: collection.ID.String(),
		ShareID:      grant.ID.String(),
		InviteCode:   code.Code,
	})

	return grant, collection, nil
}

// ListSharedWithUser retrieves the collections shared to the caller
func (s *ShareService) ListSharedWithUser(ctx context.Context, identity *domain.Identity) ([]domain.SharedCollection, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, identity.SubjectID); err == nil && cached != nil {
			return cached, nil
		}
	}

	shared, err := s.grantRepo.ListSharedWithUser(ctx, identity.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shared collections: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, identity.SubjectID, shared); err != nil {
			log.Warn().Err(err).Msg("failed to cache shared collections")
		}
	}

	return shared, nil
}

// ListCollectionShares retrieves the grants and outstanding invites for
// a collection the caller owns.
func (s *ShareService) ListCollectionShares(ctx context.Context, identity *domain.Identity, collectionID uuid.UUID) (*CollectionShares, error) {
	collection, err := s.collectionRepo.GetByID(ctx, collectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	if collection == nil || collection.OwnerID != identity.SubjectID {
		return nil, domain.ErrCollectionNotFound
	}

	grants, err := s.grantRepo.ListByCollection(ctx, collectionID, identity.SubjectID)
	if err != nil {
		return nil, err
	}

	invites, err := s.inviteRepo.ListByResource(ctx, collectionID)
	if err != nil {
		return nil, err
	}

	return &CollectionShares{Grants: grants, Invites: invites}, nil
}

// UpdatePermission changes a grant's permission (owner only). Sessions
// already open under the previous permission are unaffected.
func (s *ShareService) UpdatePermission(ctx context.Context, identity *domain.Identity, shareID uuid.UUID, permission domain.Permission) (*domain.ShareGrant, error) {
	grant, err := s.grantRepo.GetGrant(ctx, shareID)
	if err != nil {
		return nil, err
	}
	if grant == nil || grant.OwnerID != identity.SubjectID {
		return nil, domain.ErrShareNotFound
	}

	if err := s.grantRepo.UpdatePermission(ctx, shareID, permission); err != nil {
		return nil, err
	}
	grant.Permission = permission

	if grant.GranteeID != nil {
		s.invalidate(ctx, *grant.GranteeID)
	}
	s.audit.Record(ctx, mongo.AuditEntry{
		Action:       mongo.ActionUpdate,
		UserID:       identity.SubjectID,
		CollectionID: grant.CollectionID.String(),
		ShareID:      grant.ID.String(),
	})

	return grant, nil
}

// Revoke soft-deletes a grant. The owner may revoke any grant on their
// collection; a grantee may walk away from their own.
func (s *ShareService) Revoke(ctx context.Context, identity *domain.Identity, shareID uuid.UUID) error {
	grant, err := s.grantRepo.GetGrant(ctx, shareID)
	if err != nil {
		return err
	}
	if grant == nil {
		return domain.ErrShareNotFound
	}

	isOwner := grant.OwnerID == identity.SubjectID
	isGrantee := grant.GranteeID != nil && *grant.GranteeID == identity.SubjectID
	if !isOwner && !isGrantee {
		return domain.ErrNoAccess
	}

	if err := s.grantRepo.SoftDelete(ctx, shareID); err != nil {
		return err
	}

	if grant.GranteeID != nil {
		s.invalidate(ctx, *grant.GranteeID)
	}
	s.audit.Record(ctx, mongo.AuditEntry{
		Action:       mongo.ActionDelete,
		UserID:       identity.SubjectID,
		CollectionID: grant.CollectionID.String(),
		ShareID:      grant.ID.String(),
	})

	return nil
}

func (s *ShareService) invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		log.Warn().Err(err).Str("user", userID).Msg("failed to invalidate shared-collection cache")
	}
}
