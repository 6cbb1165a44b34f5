package domain

// Domain errors are closed sets of constant values so callers can match
// them with errors.Is and the HTTP boundary can map each family to a
// status code exactly once.

// AuthError means bearer-token validation failed; mapped to 401.
type AuthError string

func (e AuthError) Error() string { return string(e) }

const (
	ErrTokenMalformed AuthError = "malformed token"
	ErrTokenInvalid   AuthError = "invalid token"
	ErrTokenExpired   AuthError = "token expired"
	ErrKeyUnavailable AuthError = "signing key unavailable"
)

// AuthorizationError means the identity is known but the operation is
// not permitted; mapped to 403.
type AuthorizationError string

func (e AuthorizationError) Error() string { return string(e) }

const (
	ErrNoAccess               AuthorizationError = "no access to resource"
	ErrInsufficientPermission AuthorizationError = "insufficient permission"
	ErrNotOwner               AuthorizationError = "owner access required"
)

// InviteError covers invite issuance and redemption business rules;
// NotFound maps to 404, the rest to 400.
type InviteError string

func (e InviteError) Error() string { return string(e) }

const (
	ErrInviteNotFound    InviteError = "invalid invite code"
	ErrInviteExpired     InviteError = "invite code has expired"
	ErrInviteSelfJoin    InviteError = "cannot join your own collection"
	ErrInviteAlreadyUsed InviteError = "you already have access to this collection"
	ErrInviteTypeInvalid InviteError = "invite code does not apply to this resource type"
)

// ConstraintError is a violated hierarchy invariant; mapped to 400.
type ConstraintError string

func (e ConstraintError) Error() string { return string(e) }

const (
	ErrLastCollection ConstraintError = "cannot delete the only remaining collection"
)

// ResourceError covers absent resources. Soft-deleted resources are
// reported identically to ones that never existed; mapped to 404.
type ResourceError string

func (e ResourceError) Error() string { return string(e) }

const (
	ErrWorkspaceNotFound  ResourceError = "workspace not found"
	ErrCollectionNotFound ResourceError = "collection not found"
	ErrDrawingNotFound    ResourceError = "drawing not found"
	ErrShareNotFound      ResourceError = "share not found"
)
