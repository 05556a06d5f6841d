// Code generated by MockGen. DO NOT EDIT.
// Source: ./interfaces.go
//
// Generated by this command:
//
//	mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_webhooks.go -source=./interfaces.go
//

// Package webhooks is a generated GoMock package.
package webhooks

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

// CreateUser mocks base method.
func (m *MockStorageInterface) CreateUser(ctx context.Context, email, name string) (*types.User, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateUser", ctx, email, name)
	ret0, _ := ret[0].(*types.User)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CreateUser indicates an expected call of CreateUser.
func (mr *MockStorageInterfaceMockRecorder) CreateUser(ctx, email, name any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateUser", reflect.TypeOf((*MockStorageInterface)(nil).CreateUser), ctx, email, name)
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

// MockPendingGrantClaimerInterface is a mock of PendingGrantClaimerInterface interface.
type MockPendingGrantClaimerInterface struct {
	ctrl     *gomock.Controller
	recorder *MockPendingGrantClaimerInterfaceMockRecorder
	isgomock struct{}
}

// MockPendingGrantClaimerInterfaceMockRecorder is the mock recorder for MockPendingGrantClaimerInterface.
type MockPendingGrantClaimerInterfaceMockRecorder struct {
	mock *MockPendingGrantClaimerInterface
}

// NewMockPendingGrantClaimerInterface creates a new mock instance.
func NewMockPendingGrantClaimerInterface(ctrl *gomock.Controller) *MockPendingGrantClaimerInterface {
	mock := &MockPendingGrantClaimerInterface{ctrl: ctrl}
	mock.recorder = &MockPendingGrantClaimerInterfaceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockPendingGrantClaimerInterface) EXPECT() *MockPendingGrantClaimerInterfaceMockRecorder {
	return m.recorder
}

// ClaimForUser mocks base method.
func (m *MockPendingGrantClaimerInterface) ClaimForUser(ctx context.Context, user *types.User, now time.Time) ([]*types.EntitlementSource, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ClaimForUser", ctx, user, now)
	ret0, _ := ret[0].([]*types.EntitlementSource)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ClaimForUser indicates an expected call of ClaimForUser.
func (mr *MockPendingGrantClaimerInterfaceMockRecorder) ClaimForUser(ctx, user, now any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ClaimForUser", reflect.TypeOf((*MockPendingGrantClaimerInterface)(nil).ClaimForUser), ctx, user, now)
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

// HandleRegistration mocks base method.
func (m *MockServiceInterface) HandleRegistration(ctx context.Context, email, name string, now time.Time) (*RegistrationResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "HandleRegistration", ctx, email, name, now)
	ret0, _ := ret[0].(*RegistrationResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// HandleRegistration indicates an expected call of HandleRegistration.
func (mr *MockServiceInterfaceMockRecorder) HandleRegistration(ctx, email, name, now any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "HandleRegistration", reflect.TypeOf((*MockServiceInterface)(nil).HandleRegistration), ctx, email, name, now)
}
