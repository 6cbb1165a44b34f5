package domain

import (
	"time"

	"github.com/google/uuid"
)

// Permission is the scope a grant delegates over a resource.
type Permission string

const (
	PermissionView Permission = "view"
	PermissionEdit Permission = "edit"
)

// Valid reports whether p is a known permission value.
func (p Permission) Valid() bool {
	return p == PermissionView || p == PermissionEdit
}

// ShareStatus is the lifecycle state of a grant.
type ShareStatus string

const (
	ShareStatusPending  ShareStatus = "pending"
	ShareStatusAccepted ShareStatus = "accepted"
)

// ResourceType identifies what kind of resource an id refers to.
type ResourceType string

const (
	ResourceWorkspace  ResourceType = "workspace"
	ResourceCollection ResourceType = "collection"
	ResourceDrawing    ResourceType = "drawing"
)

// ShareGrant is a concrete, revocable delegation of a permission over a
// collection to a specific user. At most one accepted, non-deleted grant
// may exist per (collection, grantee) pair.
type ShareGrant struct {
	ID           uuid.UUID  `json:"id"`
	CollectionID uuid.UUID  `json:"collection_id"`
	OwnerID      string     `json:"owner_id"`
	GranteeID    *string    `json:"grantee_id,omitempty"`
	Permission   Permission `json:"permission"`
	Status       ShareStatus `json:"status"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"-"`
}

// Expired reports whether the grant's expiry has been reached. A grant
// is live strictly before its expiry; at the expiry instant it is gone.
func (g *ShareGrant) Expired(now time.Time) bool {
	return g.ExpiresAt != nil && !now.Before(*g.ExpiresAt)
}

// Active reports whether the grant currently delegates access.
func (g *ShareGrant) Active(now time.Time) bool {
	return g.Status == ShareStatusAccepted && g.DeletedAt == nil && !g.Expired(now)
}

// InviteCode is an immutable offer to delegate access. Redemption reads
// the code and materializes a ShareGrant; it never mutates the code, so
// a code stays redeemable by further users until it expires.
type InviteCode struct {
	Code         string       `json:"code"`
	ResourceType ResourceType `json:"resource_type"`
	ResourceID   uuid.UUID    `json:"resource_id"`
	IssuerID     string       `json:"issuer_id"`
	Permission   Permission   `json:"permission"`
	ExpiresAt    *time.Time   `json:"expires_at,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

// Expired reports whether the code can no longer be redeemed.
func (c *InviteCode) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(*c.ExpiresAt)
}

// InviteCreate represents invite issuance data
type InviteCreate struct {
	CollectionID  uuid.UUID  `json:"collection_id" validate:"required"`
	Permission    Permission `json:"permission" validate:"omitempty,oneof=view edit"`
	ExpiresInDays int        `json:"expires_in_days,omitempty" validate:"omitempty,min=1,max=365"`
}

// InviteJoin represents invite redemption data
type InviteJoin struct {
	InviteCode string `json:"invite_code" validate:"required"`
}

// SharePermissionUpdate represents a grant permission change
type SharePermissionUpdate struct {
	Permission Permission `json:"permission" validate:"required,oneof=view edit"`
}
