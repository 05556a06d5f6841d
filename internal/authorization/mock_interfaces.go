// Code generated by MockGen. DO NOT EDIT.
// Source: ./interfaces.go
//
// Generated by this command:
//
//	mockgen -build_flags=--mod=mod -package authorization -destination ./mock_interfaces.go -source=./interfaces.go
//

// Package authorization is a generated GoMock package.
package authorization

import (
	context "context"
	reflect "reflect"

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

// GetEditionByID mocks base method.
func (m *MockStorageInterface) GetEditionByID(ctx context.Context, id string) (*types.EventEdition, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetEditionByID", ctx, id)
	ret0, _ := ret[0].(*types.EventEdition)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetEditionByID indicates an expected call of GetEditionByID.
func (mr *MockStorageInterfaceMockRecorder) GetEditionByID(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetEditionByID", reflect.TypeOf((*MockStorageInterface)(nil).GetEditionByID), ctx, id)
}

// GetMembership mocks base method.
func (m *MockStorageInterface) GetMembership(ctx context.Context, organizationID, userID string) (*types.Membership, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetMembership", ctx, organizationID, userID)
	ret0, _ := ret[0].(*types.Membership)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetMembership indicates an expected call of GetMembership.
func (mr *MockStorageInterfaceMockRecorder) GetMembership(ctx, organizationID, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetMembership", reflect.TypeOf((*MockStorageInterface)(nil).GetMembership), ctx, organizationID, userID)
}

// GetOrganizationByID mocks base method.
func (m *MockStorageInterface) GetOrganizationByID(ctx context.Context, id string) (*types.Organization, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetOrganizationByID", ctx, id)
	ret0, _ := ret[0].(*types.Organization)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetOrganizationByID indicates an expected call of GetOrganizationByID.
func (mr *MockStorageInterfaceMockRecorder) GetOrganizationByID(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetOrganizationByID", reflect.TypeOf((*MockStorageInterface)(nil).GetOrganizationByID), ctx, id)
}

// GetSeriesByID mocks base method.
func (m *MockStorageInterface) GetSeriesByID(ctx context.Context, id string) (*types.EventSeries, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetSeriesByID", ctx, id)
	ret0, _ := ret[0].(*types.EventSeries)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetSeriesByID indicates an expected call of GetSeriesByID.
func (mr *MockStorageInterfaceMockRecorder) GetSeriesByID(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetSeriesByID", reflect.TypeOf((*MockStorageInterface)(nil).GetSeriesByID), ctx, id)
}

// MockResolverInterface is a mock of ResolverInterface interface.
type MockResolverInterface struct {
	ctrl     *gomock.Controller
	recorder *MockResolverInterfaceMockRecorder
	isgomock struct{}
}

// MockResolverInterfaceMockRecorder is the mock recorder for MockResolverInterface.
type MockResolverInterfaceMockRecorder struct {
	mock *MockResolverInterface
}

// NewMockResolverInterface creates a new mock instance.
func NewMockResolverInterface(ctrl *gomock.Controller) *MockResolverInterface {
	mock := &MockResolverInterface{ctrl: ctrl}
	mock.recorder = &MockResolverInterfaceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockResolverInterface) EXPECT() *MockResolverInterfaceMockRecorder {
	return m.recorder
}

// CanUserAccessEdition mocks base method.
func (m *MockResolverInterface) CanUserAccessEdition(ctx context.Context, userID, editionID string, capability Capability) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CanUserAccessEdition", ctx, userID, editionID, capability)
	ret0, _ := ret[0].(error)
	return ret0
}

// CanUserAccessEdition indicates an expected call of CanUserAccessEdition.
func (mr *MockResolverInterfaceMockRecorder) CanUserAccessEdition(ctx, userID, editionID, capability any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CanUserAccessEdition", reflect.TypeOf((*MockResolverInterface)(nil).CanUserAccessEdition), ctx, userID, editionID, capability)
}

// CanUserAccessSeries mocks base method.
func (m *MockResolverInterface) CanUserAccessSeries(ctx context.Context, userID, seriesID string, capability Capability) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CanUserAccessSeries", ctx, userID, seriesID, capability)
	ret0, _ := ret[0].(error)
	return ret0
}

// CanUserAccessSeries indicates an expected call of CanUserAccessSeries.
func (mr *MockResolverInterfaceMockRecorder) CanUserAccessSeries(ctx, userID, seriesID, capability any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CanUserAccessSeries", reflect.TypeOf((*MockResolverInterface)(nil).CanUserAccessSeries), ctx, userID, seriesID, capability)
}

// GetOrgMembership mocks base method.
func (m *MockResolverInterface) GetOrgMembership(ctx context.Context, userID, organizationID string) (*types.Membership, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetOrgMembership", ctx, userID, organizationID)
	ret0, _ := ret[0].(*types.Membership)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetOrgMembership indicates an expected call of GetOrgMembership.
func (mr *MockResolverInterfaceMockRecorder) GetOrgMembership(ctx, userID, organizationID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetOrgMembership", reflect.TypeOf((*MockResolverInterface)(nil).GetOrgMembership), ctx, userID, organizationID)
}
