// Package authz decides, for a validated identity and a target
// resource, whether an operation is permitted. Ownership always wins;
// delegated grants only ever widen read/write access to collections and
// their drawings, never manage rights.
package authz

import (
	"context"
	"time"

	"github.com/drawvault/workspace-api/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Operation is the kind of access being requested.
type Operation string

const (
	OpRead  Operation = "read"
	OpWrite Operation = "write"
	// OpManage covers rename, delete, re-share and move; always
	// owner-only regardless of grant permission.
	OpManage Operation = "manage"
)

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed    bool
	Owner      bool
	Permission domain.Permission
	Reason     domain.AuthorizationError
}

// Err returns nil for an allow and the deny reason otherwise.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return d.Reason
}

func allowOwner() Decision {
	return Decision{Allowed: true, Owner: true, Permission: domain.PermissionEdit}
}

func allow(p domain.Permission) Decision {
	return Decision{Allowed: true, Permission: p}
}

func deny(reason domain.AuthorizationError) Decision {
	return Decision{Reason: reason}
}

// HierarchyReader resolves ownership and parentage of live resources.
// Implementations must treat soft-deleted resources as absent.
type HierarchyReader interface {
	WorkspaceOwner(ctx context.Context, id uuid.UUID) (string, error)
	CollectionOwner(ctx context.Context, id uuid.UUID) (string, error)
	// DrawingOwner returns the drawing's owner and its parent
	// collection id (nil when unfiled).
	DrawingOwner(ctx context.Context, id uuid.UUID) (string, *uuid.UUID, error)
}

// GrantReader looks up accepted, non-deleted grants. Expiry is the
// gate's concern, not the store's.
type GrantReader interface {
	ActiveGrant(ctx context.Context, collectionID uuid.UUID, granteeID string) (*domain.ShareGrant, error)
}

// Gate is the authorization gate. Checks are side-effect-free and
// self-contained per request.
type Gate struct {
	hierarchy HierarchyReader
	grants    GrantReader
	now       func() time.Time
}

// NewGate creates an authorization gate.
func NewGate(hierarchy HierarchyReader, grants GrantReader) *Gate {
	return &Gate{hierarchy: hierarchy, grants: grants, now: time.Now}
}

// Authorize evaluates the fixed-order policy: owner first, then an
// accepted unexpired grant, then deny. Resource-not-found errors pass
// through so callers cannot distinguish deleted from never-existed.
func (g *Gate) Authorize(ctx context.Context, identity *domain.Identity, resourceType domain.ResourceType, resourceID uuid.UUID, op Operation) (Decision, error) {
	var (
		ownerID      string
		collectionID *uuid.UUID
		err          error
	)

	switch resourceType {
	case domain.ResourceWorkspace:
		ownerID, err = g.hierarchy.WorkspaceOwner(ctx, resourceID)
	case domain.ResourceCollection:
		ownerID, err = g.hierarchy.CollectionOwner(ctx, resourceID)
		collectionID = &resourceID
	case domain.ResourceDrawing:
		ownerID, collectionID, err = g.hierarchy.DrawingOwner(ctx, resourceID)
	default:
		return deny(domain.ErrNoAccess), nil
	}
	if err != nil {
		return Decision{}, err
	}

	if identity.SubjectID == ownerID {
		return allowOwner(), nil
	}

	if op == OpManage {
		return g.denied(identity, resourceType, resourceID, op, domain.ErrNotOwner), nil
	}

	// Grants are bound to collections; workspaces and unfiled drawings
	// have no delegation path.
	if collectionID == nil {
		return g.denied(identity, resourceType, resourceID, op, domain.ErrNoAccess), nil
	}

	grant, err := g.grants.ActiveGrant(ctx, *collectionID, identity.SubjectID)
	if err != nil {
		return Decision{}, err
	}
	// An expired grant is treated as absent; expiry is enforced lazily
	// at evaluation time, no background sweep.
	if grant == nil || grant.Expired(g.now()) {
		return g.denied(identity, resourceType, resourceID, op, domain.ErrNoAccess), nil
	}

	switch op {
	case OpRead:
		return allow(grant.Permission), nil
	case OpWrite:
		if grant.Permission == domain.PermissionEdit {
			return allow(domain.PermissionEdit), nil
		}
		return g.denied(identity, resourceType, resourceID, op, domain.ErrInsufficientPermission), nil
	default:
		return g.denied(identity, resourceType, resourceID, op, domain.ErrNoAccess), nil
	}
}

func (g *Gate) denied(identity *domain.Identity, resourceType domain.ResourceType, resourceID uuid.UUID, op Operation, reason domain.AuthorizationError) Decision {
	log.Info().
		Str("subject", identity.SubjectID).
		Str("resource_type", string(resourceType)).
		Str("resource_id", resourceID.String()).
		Str("operation", string(op)).
		Str("reason", reason.Error()).
		Msg("authorization denied")
	return deny(reason)
}
