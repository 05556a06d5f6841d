// Code generated by MockGen. DO NOT EDIT.
// Source: ./interfaces.go
//
// Generated by this command:
//
//	mockgen -build_flags=--mod=mod -package entitlements -destination ./mock_entitlements.go -source=./interfaces.go
//

// Package entitlements is a generated GoMock package.
package entitlements

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

// GetUserByEmail mocks base method.
func (m *MockStorageInterface) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetUserByEmail", ctx, email)
	ret0, _ := ret[0].(*types.User)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetUserByEmail indicates an expected call of GetUserByEmail.
func (mr *MockStorageInterfaceMockRecorder) GetUserByEmail(ctx, email any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetUserByEmail", reflect.TypeOf((*MockStorageInterface)(nil).GetUserByEmail), ctx, email)
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

// ListAuditEntriesBySubject mocks base method.
func (m *MockStorageInterface) ListAuditEntriesBySubject(ctx context.Context, userID string, limit uint64) ([]*types.AuditEntry, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListAuditEntriesBySubject", ctx, userID, limit)
	ret0, _ := ret[0].([]*types.AuditEntry)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListAuditEntriesBySubject indicates an expected call of ListAuditEntriesBySubject.
func (mr *MockStorageInterfaceMockRecorder) ListAuditEntriesBySubject(ctx, userID, limit any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListAuditEntriesBySubject", reflect.TypeOf((*MockStorageInterface)(nil).ListAuditEntriesBySubject), ctx, userID, limit)
}

// ListEntitlementSourcesByUserID mocks base method.
func (m *MockStorageInterface) ListEntitlementSourcesByUserID(ctx context.Context, userID string) ([]*types.EntitlementSource, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListEntitlementSourcesByUserID", ctx, userID)
	ret0, _ := ret[0].([]*types.EntitlementSource)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListEntitlementSourcesByUserID indicates an expected call of ListEntitlementSourcesByUserID.
func (mr *MockStorageInterfaceMockRecorder) ListEntitlementSourcesByUserID(ctx, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListEntitlementSourcesByUserID", reflect.TypeOf((*MockStorageInterface)(nil).ListEntitlementSourcesByUserID), ctx, userID)
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

// GetEntitlementStatus mocks base method.
func (m *MockServiceInterface) GetEntitlementStatus(ctx context.Context, userID string, now time.Time) (*types.EntitlementStatus, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetEntitlementStatus", ctx, userID, now)
	ret0, _ := ret[0].(*types.EntitlementStatus)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetEntitlementStatus indicates an expected call of GetEntitlementStatus.
func (mr *MockServiceInterfaceMockRecorder) GetEntitlementStatus(ctx, userID, now any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetEntitlementStatus", reflect.TypeOf((*MockServiceInterface)(nil).GetEntitlementStatus), ctx, userID, now)
}

// LookupBillingUser mocks base method.
func (m *MockServiceInterface) LookupBillingUser(ctx context.Context, email string, now time.Time) (*BillingUser, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "LookupBillingUser", ctx, email, now)
	ret0, _ := ret[0].(*BillingUser)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// LookupBillingUser indicates an expected call of LookupBillingUser.
func (mr *MockServiceInterfaceMockRecorder) LookupBillingUser(ctx, email, now any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "LookupBillingUser", reflect.TypeOf((*MockServiceInterface)(nil).LookupBillingUser), ctx, email, now)
}
