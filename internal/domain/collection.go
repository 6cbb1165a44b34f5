package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCollectionName is created for users with no collections.
const DefaultCollectionName = "My Drawings"

// Collection is a named group of drawings owned by exactly one user.
// A collection may optionally live inside a workspace. Soft-deleted
// collections are invisible to every read path.
type Collection struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	OwnerID     string     `json:"owner_id"`
	WorkspaceID *uuid.UUID `json:"workspace_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"`
}

// CollectionCreate represents collection creation data
type CollectionCreate struct {
	Name        string     `json:"name" validate:"required,max=255"`
	WorkspaceID *uuid.UUID `json:"workspace_id,omitempty"`
}

// CollectionUpdate represents collection update data
type CollectionUpdate struct {
	Name *string `json:"name,omitempty" validate:"omitempty,max=255"`
}

// CollectionSummary is a collection with its drawing count, as returned
// by listings.
type CollectionSummary struct {
	Collection
	DrawingCount int `json:"drawing_count"`
}

// CollectionDetail is a collection with its drawings and the caller's
// effective permission.
type CollectionDetail struct {
	Collection
	Drawings   []Drawing  `json:"drawings"`
	IsShared   bool       `json:"is_shared"`
	Permission Permission `json:"permission"`
}

// SharedCollection is a collection as seen by a grantee.
type SharedCollection struct {
	CollectionSummary
	Permission Permission `json:"permission"`
	SharedBy   string     `json:"shared_by"`
	ShareID    uuid.UUID  `json:"share_id"`
}
