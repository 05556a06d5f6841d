// Code generated by MockGen. DO NOT EDIT.
// Source: ./interfaces.go
//
// Generated by this command:
//
//	mockgen -build_flags=--mod=mod -package pendinggrants -destination ./mock_pendinggrants.go -source=./interfaces.go
//

// Package pendinggrants is a generated GoMock package.
package pendinggrants

import (
	context "context"
	reflect "reflect"
	time "time"

	types "github.com/canonical/entitlement-service/internal/types"
	gomock "go.uber.org/mock/gomock"
)

// MockStorageInterface is a mock of StorageInterface interface.
type MockStorageInterface struct {
	ctrl     *gomock.Controller
	recorder *MockStorageInterfaceMockRecorder
	isgomock struct{}
}

// MockStorageInterfaceMockRecorder is the mock recorder for MockStorageInterface.
type MockStorageInterfaceMockRecorder struct {
	mock *MockStorageInterface
}

// NewMockStorageInterface creates a new mock instance.
func NewMockStorageInterface(ctrl *gomock.Controller) *MockStorageInterface {
	mock := &MockStorageInterface{ctrl: ctrl}
	mock.recorder = &MockStorageInterfaceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockStorageInterface) EXPECT() *MockStorageInterfaceMockRecorder {
	return m.recorder
}

// CreateEntitlementSource mocks base method.
func (m *MockStorageInterface) CreateEntitlementSource(ctx context.Context, src *types.EntitlementSource) (*types.EntitlementSource, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateEntitlementSource", ctx, src)
	ret0, _ := ret[0].(*types.EntitlementSource)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CreateEntitlementSource indicates an expected call of CreateEntitlementSource.
func (mr *MockStorageInterfaceMockRecorder) CreateEntitlementSource(ctx, src any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateEntitlementSource", reflect.TypeOf((*MockStorageInterface)(nil).CreateEntitlementSource), ctx, src)
}

// CreatePendingGrant mocks base method.
func (m *MockStorageInterface) CreatePendingGrant(ctx context.Context, g *types.PendingGrant) (*types.PendingGrant, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreatePendingGrant", ctx, g)
	ret0, _ := ret[0].(*types.PendingGrant)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CreatePendingGrant indicates an expected call of CreatePendingGrant.
func (mr *MockStorageInterfaceMockRecorder) CreatePendingGrant(ctx, g any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreatePendingGrant", reflect.TypeOf((*MockStorageInterface)(nil).CreatePendingGrant), ctx, g)
}

// GetPendingGrantByID mocks base method.
func (m *MockStorageInterface) GetPendingGrantByID(ctx context.Context, id string) (*types.PendingGrant, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetPendingGrantByID", ctx, id)
	ret0, _ := ret[0].(*types.PendingGrant)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetPendingGrantByID indicates an expected call of GetPendingGrantByID.
func (mr *MockStorageInterfaceMockRecorder) GetPendingGrantByID(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetPendingGrantByID", reflect.TypeOf((*MockStorageInterface)(nil).GetPendingGrantByID), ctx, id)
}

// ListActivePendingGrantsByEmail mocks base method.
func (m *MockStorageInterface) ListActivePendingGrantsByEmail(ctx context.Context, email string) ([]*types.PendingGrant, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListActivePendingGrantsByEmail", ctx, email)
	ret0, _ := ret[0].([]*types.PendingGrant)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListActivePendingGrantsByEmail indicates an expected call of ListActivePendingGrantsByEmail.
func (mr *MockStorageInterfaceMockRecorder) ListActivePendingGrantsByEmail(ctx, email any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListActivePendingGrantsByEmail", reflect.TypeOf((*MockStorageInterface)(nil).ListActivePendingGrantsByEmail), ctx, email)
}

// MarkPendingGrantClaimed mocks base method.
func (m *MockStorageInterface) MarkPendingGrantClaimed(ctx context.Context, id, userID string, at time.Time) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MarkPendingGrantClaimed", ctx, id, userID, at)
	ret0, _ := ret[0].(error)
	return ret0
}

// MarkPendingGrantClaimed indicates an expected call of MarkPendingGrantClaimed.
func (mr *MockStorageInterfaceMockRecorder) MarkPendingGrantClaimed(ctx, id, userID, at any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MarkPendingGrantClaimed", reflect.TypeOf((*MockStorageInterface)(nil).MarkPendingGrantClaimed), ctx, id, userID, at)
}

// SetPendingGrantActive mocks base method.
func (m *MockStorageInterface) SetPendingGrantActive(ctx context.Context, id string, active bool) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetPendingGrantActive", ctx, id, active)
	ret0, _ := ret[0].(error)
	return ret0
}

// SetPendingGrantActive indicates an expected call of SetPendingGrantActive.
func (mr *MockStorageInterfaceMockRecorder) SetPendingGrantActive(ctx, id, active any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetPendingGrantActive", reflect.TypeOf((*MockStorageInterface)(nil).SetPendingGrantActive), ctx, id, active)
}

// MockServiceInterface is a mock of ServiceInterface interface.
type MockServiceInterface struct {
	ctrl     *gomock.Controller
	recorder *MockServiceInterfaceMockRecorder
	isgomock struct{}
}

// MockServiceInterfaceMockRecorder is the mock recorder for MockServiceInterface.
type MockServiceInterfaceMockRecorder struct {
	mock *MockServiceInterface
}

// NewMockServiceInterface creates a new mock instance.
func NewMockServiceInterface(ctrl *gomock.Controller) *MockServiceInterface {
	mock := &MockServiceInterface{ctrl: ctrl}
	mock.recorder = &MockServiceInterfaceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockServiceInterface) EXPECT() *MockServiceInterfaceMockRecorder {
	return m.recorder
}

// ClaimForUser mocks base method.
func (m *MockServiceInterface) ClaimForUser(ctx context.Context, user *types.User, now time.Time) ([]*types.EntitlementSource, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ClaimForUser", ctx, user, now)
	ret0, _ := ret[0].([]*types.EntitlementSource)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ClaimForUser indicates an expected call of ClaimForUser.
func (mr *MockServiceInterfaceMockRecorder) ClaimForUser(ctx, user, now any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ClaimForUser", reflect.TypeOf((*MockServiceInterface)(nil).ClaimForUser), ctx, user, now)
}

// Create mocks base method.
func (m *MockServiceInterface) Create(ctx context.Context, params CreateParams, now time.Time) (*types.PendingGrant, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, params, now)
	ret0, _ := ret[0].(*types.PendingGrant)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Create indicates an expected call of Create.
func (mr *MockServiceInterfaceMockRecorder) Create(ctx, params, now any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockServiceInterface)(nil).Create), ctx, params, now)
}

// Disable mocks base method.
func (m *MockServiceInterface) Disable(ctx context.Context, id string) (*types.PendingGrant, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Disable", ctx, id)
	ret0, _ := ret[0].(*types.PendingGrant)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Disable indicates an expected call of Disable.
func (mr *MockServiceInterfaceMockRecorder) Disable(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Disable", reflect.TypeOf((*MockServiceInterface)(nil).Disable), ctx, id)
}

// Enable mocks base method.
func (m *MockServiceInterface) Enable(ctx context.Context, id string) (*types.PendingGrant, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Enable", ctx, id)
	ret0, _ := ret[0].(*types.PendingGrant)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Enable indicates an expected call of Enable.
func (mr *MockServiceInterfaceMockRecorder) Enable(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Enable", reflect.TypeOf((*MockServiceInterface)(nil).Enable), ctx, id)
}
