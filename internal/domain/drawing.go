package domain

import (
	"time"

	"github.com/google/uuid"
)

// Drawing is a single document. CollectionID is nil for unfiled
// drawings. Only the owner may move a drawing between collections;
// delegates cannot, whatever their grant permission.
type Drawing struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Content      string     `json:"content,omitempty"`
	ThumbnailURL string     `json:"thumbnail_url,omitempty"`
	OwnerID      string     `json:"owner_id"`
	CollectionID *uuid.UUID `json:"collection_id,omitempty"`
	LastModified time.Time  `json:"last_modified"`
	DeletedAt    *time.Time `json:"-"`
}

// DrawingCreate represents drawing creation data
type DrawingCreate struct {
	Name         string     `json:"name" validate:"required,max=255"`
	Content      string     `json:"content,omitempty"`
	ThumbnailURL string     `json:"thumbnail_url,omitempty"`
	CollectionID *uuid.UUID `json:"collection_id,omitempty"`
}

// DrawingUpdate represents drawing update data
type DrawingUpdate struct {
	Name         *string    `json:"name,omitempty" validate:"omitempty,max=255"`
	Content      *string    `json:"content,omitempty"`
	ThumbnailURL *string    `json:"thumbnail_url,omitempty"`
	CollectionID *uuid.UUID `json:"collection_id,omitempty"`
}
