package service

import (
	"context"

	"github.com/drawvault/workspace-api/internal/authz"
	"github.com/drawvault/workspace-api/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockWorkspaceStore mocks the WorkspaceStore interface
type MockWorkspaceStore struct {
	mock.Mock
}

func (m *MockWorkspaceStore) Create(ctx context.Context, workspace *domain.Workspace) error {
	args := m.Called(ctx, workspace)
	return args.Error(0)
}

func (m *MockWorkspaceStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceStore) ListByOwner(ctx context.Context, ownerID string) ([]domain.Workspace, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceStore) Update(ctx context.Context, id uuid.UUID, update *domain.WorkspaceUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockWorkspaceStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCollectionStore mocks the CollectionStore interface
type MockCollectionStore struct {
	mock.Mock
}

func (m *MockCollectionStore) Create(ctx context.Context, collection *domain.Collection) error {
	args := m.Called(ctx, collection)
	return args.Error(0)
}

func (m *MockCollectionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Collection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Collection), args.Error(1)
}

func (m *MockCollectionStore) ListByOwner(ctx context.Context, ownerID string) ([]domain.CollectionSummary, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.CollectionSummary), args.Error(1)
}

func (m *MockCollectionStore) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.CollectionSummary, error) {
	args := m.Called(ctx, workspaceID)
	return args.Get(0).([]domain.CollectionSummary), args.Error(1)
}

func (m *MockCollectionStore) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	args := m.Called(ctx, ownerID)
	return args.Int(0), args.Error(1)
}

func (m *MockCollectionStore) Update(ctx context.Context, id uuid.UUID, update *domain.CollectionUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockCollectionStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockDrawingStore mocks the DrawingStore interface
type MockDrawingStore struct {
	mock.Mock
}

func (m *MockDrawingStore) Create(ctx context.Context, drawing *domain.Drawing) error {
	args := m.Called(ctx, drawing)
	return args.Error(0)
}

func (m *MockDrawingStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Drawing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Drawing), args.Error(1)
}

func (m *MockDrawingStore) ListByCollection(ctx context.Context, collectionID uuid.UUID) ([]domain.Drawing, error) {
	args := m.Called(ctx, collectionID)
	return args.Get(0).([]domain.Drawing), args.Error(1)
}

func (m *MockDrawingStore) Update(ctx context.Context, id uuid.UUID, update *domain.DrawingUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockDrawingStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockGrantStore mocks the GrantStore interface
type MockGrantStore struct {
	mock.Mock
}

func (m *MockGrantStore) ActiveGrant(ctx context.Context, collectionID uuid.UUID, granteeID string) (*domain.ShareGrant, error) {
	args := m.Called(ctx, collectionID, granteeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShareGrant), args.Error(1)
}

func (m *MockGrantStore) GetGrant(ctx context.Context, id uuid.UUID) (*domain.ShareGrant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShareGrant), args.Error(1)
}

func (m *MockGrantStore) ListByCollection(ctx context.Context, collectionID uuid.UUID, ownerID string) ([]domain.ShareGrant, error) {
	args := m.Called(ctx, collectionID, ownerID)
	return args.Get(0).([]domain.ShareGrant), args.Error(1)
}

func (m *MockGrantStore) ListSharedWithUser(ctx context.Context, granteeID string) ([]domain.SharedCollection, error) {
	args := m.Called(ctx, granteeID)
	return args.Get(0).([]domain.SharedCollection), args.Error(1)
}

func (m *MockGrantStore) UpdatePermission(ctx context.Context, id uuid.UUID, permission domain.Permission) error {
	args := m.Called(ctx, id, permission)
	return args.Error(0)
}

func (m *MockGrantStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGrantStore) RedeemGrant(ctx context.Context, code *domain.InviteCode, granteeID string) (*domain.ShareGrant, error) {
	args := m.Called(ctx, code, granteeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShareGrant), args.Error(1)
}

// MockInviteStore mocks the InviteStore interface
type MockInviteStore struct {
	mock.Mock
}

func (m *MockInviteStore) Create(ctx context.Context, code *domain.InviteCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockInviteStore) GetByCode(ctx context.Context, code string) (*domain.InviteCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InviteCode), args.Error(1)
}

func (m *MockInviteStore) ListByResource(ctx context.Context, resourceID uuid.UUID) ([]domain.InviteCode, error) {
	args := m.Called(ctx, resourceID)
	return args.Get(0).([]domain.InviteCode), args.Error(1)
}

// MockSharedCache mocks the SharedCache interface
type MockSharedCache struct {
	mock.Mock
}

func (m *MockSharedCache) Get(ctx context.Context, userID string) ([]domain.SharedCollection, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SharedCollection), args.Error(1)
}

func (m *MockSharedCache) Set(ctx context.Context, userID string, shared []domain.SharedCollection) error {
	args := m.Called(ctx, userID, shared)
	return args.Error(0)
}

func (m *MockSharedCache) Invalidate(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockAuthorizer mocks the Authorizer interface
type MockAuthorizer struct {
	mock.Mock
}

func (m *MockAuthorizer) Authorize(ctx context.Context, identity *domain.Identity, resourceType domain.ResourceType, resourceID uuid.UUID, op authz.Operation) (authz.Decision, error) {
	args := m.Called(ctx, identity, resourceType, resourceID, op)
	return args.Get(0).(authz.Decision), args.Error(1)
}
