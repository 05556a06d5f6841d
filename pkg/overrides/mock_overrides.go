// Code generated by MockGen. DO NOT EDIT.
// Source: ./interfaces.go
//
// Generated by this command:
//
//	mockgen -build_flags=--mod=mod -package overrides -destination ./mock_overrides.go -source=./interfaces.go
//

// Package overrides is a generated GoMock package.
package overrides

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

// GetActiveOverride mocks base method.
func (m *MockStorageInterface) GetActiveOverride(ctx context.Context, userID string, at time.Time) (*types.EntitlementSource, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetActiveOverride", ctx, userID, at)
	ret0, _ := ret[0].(*types.EntitlementSource)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetActiveOverride indicates an expected call of GetActiveOverride.
func (mr *MockStorageInterfaceMockRecorder) GetActiveOverride(ctx, userID, at any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetActiveOverride", reflect.TypeOf((*MockStorageInterface)(nil).GetActiveOverride), ctx, userID, at)
}

// GetEntitlementSourceByID mocks base method.
func (m *MockStorageInterface) GetEntitlementSourceByID(ctx context.Context, id string) (*types.EntitlementSource, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetEntitlementSourceByID", ctx, id)
	ret0, _ := ret[0].(*types.EntitlementSource)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetEntitlementSourceByID indicates an expected call of GetEntitlementSourceByID.
func (mr *MockStorageInterfaceMockRecorder) GetEntitlementSourceByID(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetEntitlementSourceByID", reflect.TypeOf((*MockStorageInterface)(nil).GetEntitlementSourceByID), ctx, id)
}

// GetUserByID mocks base method.
func (m *MockStorageInterface) GetUserByID(ctx context.Context, id string) (*types.User, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetUserByID", ctx, id)
	ret0, _ := ret[0].(*types.User)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetUserByID indicates an expected call of GetUserByID.
func (mr *MockStorageInterfaceMockRecorder) GetUserByID(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetUserByID", reflect.TypeOf((*MockStorageInterface)(nil).GetUserByID), ctx, id)
}

// RevokeEntitlementSource mocks base method.
func (m *MockStorageInterface) RevokeEntitlementSource(ctx context.Context, id string, at time.Time) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RevokeEntitlementSource", ctx, id, at)
	ret0, _ := ret[0].(error)
	return ret0
}

// RevokeEntitlementSource indicates an expected call of RevokeEntitlementSource.
func (mr *MockStorageInterfaceMockRecorder) RevokeEntitlementSource(ctx, id, at any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RevokeEntitlementSource", reflect.TypeOf((*MockStorageInterface)(nil).RevokeEntitlementSource), ctx, id, at)
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

// Extend mocks base method.
func (m *MockServiceInterface) Extend(ctx context.Context, params ExtendParams, now time.Time) (*types.EntitlementSource, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Extend", ctx, params, now)
	ret0, _ := ret[0].(*types.EntitlementSource)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Extend indicates an expected call of Extend.
func (mr *MockServiceInterfaceMockRecorder) Extend(ctx, params, now any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Extend", reflect.TypeOf((*MockServiceInterface)(nil).Extend), ctx, params, now)
}

// Grant mocks base method.
func (m *MockServiceInterface) Grant(ctx context.Context, params GrantParams, now time.Time) (*types.EntitlementSource, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Grant", ctx, params, now)
	ret0, _ := ret[0].(*types.EntitlementSource)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Grant indicates an expected call of Grant.
func (mr *MockServiceInterfaceMockRecorder) Grant(ctx, params, now any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Grant", reflect.TypeOf((*MockServiceInterface)(nil).Grant), ctx, params, now)
}

// Revoke mocks base method.
func (m *MockServiceInterface) Revoke(ctx context.Context, sourceID string, now time.Time) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Revoke", ctx, sourceID, now)
	ret0, _ := ret[0].(error)
	return ret0
}

// Revoke indicates an expected call of Revoke.
func (mr *MockServiceInterfaceMockRecorder) Revoke(ctx, sourceID, now any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Revoke", reflect.TypeOf((*MockServiceInterface)(nil).Revoke), ctx, sourceID, now)
}
