// Code generated by MockGen. DO NOT EDIT.
// Source: ./interfaces.go
//
// Generated by this command:
//
//	mockgen -build_flags=--mod=mod -package organizations -destination ./mock_organizations.go -source=./interfaces.go
//

// Package organizations is a generated GoMock package.
package organizations

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

// AddMember mocks base method.
func (m *MockStorageInterface) AddMember(ctx context.Context, organizationID, userID string, role types.Role) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AddMember", ctx, organizationID, userID, role)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// AddMember indicates an expected call of AddMember.
func (mr *MockStorageInterfaceMockRecorder) AddMember(ctx, organizationID, userID, role any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddMember", reflect.TypeOf((*MockStorageInterface)(nil).AddMember), ctx, organizationID, userID, role)
}

// CountOwners mocks base method.
func (m *MockStorageInterface) CountOwners(ctx context.Context, organizationID string) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CountOwners", ctx, organizationID)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CountOwners indicates an expected call of CountOwners.
func (mr *MockStorageInterfaceMockRecorder) CountOwners(ctx, organizationID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CountOwners", reflect.TypeOf((*MockStorageInterface)(nil).CountOwners), ctx, organizationID)
}

// CreateOrganization mocks base method.
func (m *MockStorageInterface) CreateOrganization(ctx context.Context, name, slug string) (*types.Organization, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateOrganization", ctx, name, slug)
	ret0, _ := ret[0].(*types.Organization)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CreateOrganization indicates an expected call of CreateOrganization.
func (mr *MockStorageInterfaceMockRecorder) CreateOrganization(ctx, name, slug any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateOrganization", reflect.TypeOf((*MockStorageInterface)(nil).CreateOrganization), ctx, name, slug)
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

// GetOrganizationBySlug mocks base method.
func (m *MockStorageInterface) GetOrganizationBySlug(ctx context.Context, slug string) (*types.Organization, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetOrganizationBySlug", ctx, slug)
	ret0, _ := ret[0].(*types.Organization)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetOrganizationBySlug indicates an expected call of GetOrganizationBySlug.
func (mr *MockStorageInterfaceMockRecorder) GetOrganizationBySlug(ctx, slug any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetOrganizationBySlug", reflect.TypeOf((*MockStorageInterface)(nil).GetOrganizationBySlug), ctx, slug)
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

// ListMembersByOrganizationID mocks base method.
func (m *MockStorageInterface) ListMembersByOrganizationID(ctx context.Context, organizationID string) ([]*types.Membership, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListMembersByOrganizationID", ctx, organizationID)
	ret0, _ := ret[0].([]*types.Membership)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListMembersByOrganizationID indicates an expected call of ListMembersByOrganizationID.
func (mr *MockStorageInterfaceMockRecorder) ListMembersByOrganizationID(ctx, organizationID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListMembersByOrganizationID", reflect.TypeOf((*MockStorageInterface)(nil).ListMembersByOrganizationID), ctx, organizationID)
}

// ListOrganizationsByUserID mocks base method.
func (m *MockStorageInterface) ListOrganizationsByUserID(ctx context.Context, userID string) ([]*types.Organization, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListOrganizationsByUserID", ctx, userID)
	ret0, _ := ret[0].([]*types.Organization)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListOrganizationsByUserID indicates an expected call of ListOrganizationsByUserID.
func (mr *MockStorageInterfaceMockRecorder) ListOrganizationsByUserID(ctx, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListOrganizationsByUserID", reflect.TypeOf((*MockStorageInterface)(nil).ListOrganizationsByUserID), ctx, userID)
}

// SoftDeleteMember mocks base method.
func (m *MockStorageInterface) SoftDeleteMember(ctx context.Context, organizationID, userID string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SoftDeleteMember", ctx, organizationID, userID)
	ret0, _ := ret[0].(error)
	return ret0
}

// SoftDeleteMember indicates an expected call of SoftDeleteMember.
func (mr *MockStorageInterfaceMockRecorder) SoftDeleteMember(ctx, organizationID, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SoftDeleteMember", reflect.TypeOf((*MockStorageInterface)(nil).SoftDeleteMember), ctx, organizationID, userID)
}

// SoftDeleteOrganization mocks base method.
func (m *MockStorageInterface) SoftDeleteOrganization(ctx context.Context, id string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SoftDeleteOrganization", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// SoftDeleteOrganization indicates an expected call of SoftDeleteOrganization.
func (mr *MockStorageInterfaceMockRecorder) SoftDeleteOrganization(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SoftDeleteOrganization", reflect.TypeOf((*MockStorageInterface)(nil).SoftDeleteOrganization), ctx, id)
}

// UpdateMemberRole mocks base method.
func (m *MockStorageInterface) UpdateMemberRole(ctx context.Context, organizationID, userID string, role types.Role) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateMemberRole", ctx, organizationID, userID, role)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpdateMemberRole indicates an expected call of UpdateMemberRole.
func (mr *MockStorageInterfaceMockRecorder) UpdateMemberRole(ctx, organizationID, userID, role any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateMemberRole", reflect.TypeOf((*MockStorageInterface)(nil).UpdateMemberRole), ctx, organizationID, userID, role)
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

// AddMember mocks base method.
func (m *MockServiceInterface) AddMember(ctx context.Context, organizationID, email string, role types.Role) (*types.Membership, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AddMember", ctx, organizationID, email, role)
	ret0, _ := ret[0].(*types.Membership)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// AddMember indicates an expected call of AddMember.
func (mr *MockServiceInterfaceMockRecorder) AddMember(ctx, organizationID, email, role any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddMember", reflect.TypeOf((*MockServiceInterface)(nil).AddMember), ctx, organizationID, email, role)
}

// Create mocks base method.
func (m *MockServiceInterface) Create(ctx context.Context, name, slug string) (*types.Organization, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, name, slug)
	ret0, _ := ret[0].(*types.Organization)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Create indicates an expected call of Create.
func (mr *MockServiceInterfaceMockRecorder) Create(ctx, name, slug any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockServiceInterface)(nil).Create), ctx, name, slug)
}

// Delete mocks base method.
func (m *MockServiceInterface) Delete(ctx context.Context, id string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// Delete indicates an expected call of Delete.
func (mr *MockServiceInterfaceMockRecorder) Delete(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockServiceInterface)(nil).Delete), ctx, id)
}

// Get mocks base method.
func (m *MockServiceInterface) Get(ctx context.Context, id string) (*types.Organization, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Get", ctx, id)
	ret0, _ := ret[0].(*types.Organization)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Get indicates an expected call of Get.
func (mr *MockServiceInterfaceMockRecorder) Get(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Get", reflect.TypeOf((*MockServiceInterface)(nil).Get), ctx, id)
}

// ListMembers mocks base method.
func (m *MockServiceInterface) ListMembers(ctx context.Context, organizationID string) ([]*types.Membership, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListMembers", ctx, organizationID)
	ret0, _ := ret[0].([]*types.Membership)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListMembers indicates an expected call of ListMembers.
func (mr *MockServiceInterfaceMockRecorder) ListMembers(ctx, organizationID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListMembers", reflect.TypeOf((*MockServiceInterface)(nil).ListMembers), ctx, organizationID)
}

// ListMine mocks base method.
func (m *MockServiceInterface) ListMine(ctx context.Context) ([]*types.Organization, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListMine", ctx)
	ret0, _ := ret[0].([]*types.Organization)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListMine indicates an expected call of ListMine.
func (mr *MockServiceInterfaceMockRecorder) ListMine(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListMine", reflect.TypeOf((*MockServiceInterface)(nil).ListMine), ctx)
}

// RemoveMember mocks base method.
func (m *MockServiceInterface) RemoveMember(ctx context.Context, organizationID, userID string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RemoveMember", ctx, organizationID, userID)
	ret0, _ := ret[0].(error)
	return ret0
}

// RemoveMember indicates an expected call of RemoveMember.
func (mr *MockServiceInterfaceMockRecorder) RemoveMember(ctx, organizationID, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RemoveMember", reflect.TypeOf((*MockServiceInterface)(nil).RemoveMember), ctx, organizationID, userID)
}

// UpdateMemberRole mocks base method.
func (m *MockServiceInterface) UpdateMemberRole(ctx context.Context, organizationID, userID string, role types.Role) (*types.Membership, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateMemberRole", ctx, organizationID, userID, role)
	ret0, _ := ret[0].(*types.Membership)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// UpdateMemberRole indicates an expected call of UpdateMemberRole.
func (mr *MockServiceInterfaceMockRecorder) UpdateMemberRole(ctx, organizationID, userID, role any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateMemberRole", reflect.TypeOf((*MockServiceInterface)(nil).UpdateMemberRole), ctx, organizationID, userID, role)
}
